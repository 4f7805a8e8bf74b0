package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"study_assistant/internal/model"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

// Register 注册成功后后端直接签发令牌，同样保存
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.storeToken(resp.AccessToken); err != nil {
		return nil, err
	}
	logger.Log.Info("User registered", zap.String("username", req.Username))
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if err := c.storeToken(resp.AccessToken); err != nil {
		return nil, err
	}
	logger.Log.Info("User logged in", zap.String("username", req.Username))
	return &resp, nil
}

// Logout 只清除本地令牌，后端无对应接口
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) storeToken(token string) error {
	if token == "" {
		return errors.New("server response did not include an access token")
	}
	if err := c.tokens.Save(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
