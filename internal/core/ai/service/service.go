package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"health-recipe-modifier/internal/core/ai/provider"
	"health-recipe-modifier/internal/pkg/common"
)

// Metrics 文字生成指標（可為 nil）
type Metrics interface {
	ObserveGeneration(provider string, err error, duration time.Duration)
}

// Service 文字生成服務。所有失敗（未設定、逾時、錯誤、空回應）
// 皆回傳包裝 common.ErrLookupUnavailable 的錯誤，由呼叫端決定降級方式。
type Service struct {
	provider  provider.Provider
	metrics   Metrics
	maxTokens int
}

// NewService 創建文字生成服務，provider 可為 nil 表示未啟用
func NewService(p provider.Provider, maxTokens int, metrics Metrics) *Service {
	return &Service{provider: p, metrics: metrics, maxTokens: maxTokens}
}

// Available 是否有可用的提供者
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// ProviderName 提供者名稱
func (s *Service) ProviderName() string {
	if !s.Available() {
		return "none"
	}
	return s.provider.Name()
}

// Complete 發送單一 prompt 並回傳文字內容
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	if !s.Available() {
		return "", fmt.Errorf("text generation disabled: %w", common.ErrLookupUnavailable)
	}

	if timeout := s.provider.GetTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, provider.NewPromptRequest(prompt, s.maxTokens))
	duration := time.Since(start)

	if err == nil && (resp == nil || strings.TrimSpace(resp.Content) == "") {
		err = fmt.Errorf("empty response from %s", s.provider.Name())
	}
	common.LogAICall(s.provider.Name(), duration, err, common.RequestIDFromContext(ctx))
	if s.metrics != nil {
		s.metrics.ObserveGeneration(s.provider.Name(), err, duration)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %v: %w", s.provider.Name(), err, common.ErrLookupUnavailable)
	}

	return strings.TrimSpace(resp.Content), nil
}

// Close 關閉提供者
func (s *Service) Close() error {
	if !s.Available() {
		return nil
	}
	return s.provider.Close()
}
