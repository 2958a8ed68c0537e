package history

import (
	"context"
	"strings"
	"unicode/utf8"

	"health-recipe-modifier/internal/pkg/common"
)

// MaxCategoryLength 分類標籤的最大字元數
const MaxCategoryLength = 50

// Service 紀錄查詢與更新
type Service struct {
	store Store
}

// NewService 創建紀錄服務
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List 依擁有者查詢紀錄，新到舊排序
func (s *Service) List(ctx context.Context, userID string, filter Filter) ([]FoodEntry, error) {
	entries, err := s.store.FindByOwner(ctx, Owner(userID), filter.Normalize())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []FoodEntry{}
	}
	return entries, nil
}

// ToggleFavorite 切換收藏狀態並回傳新狀態
func (s *Service) ToggleFavorite(ctx context.Context, userID, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, common.NewValidationError("entry id is required")
	}
	return s.store.ToggleFavorite(ctx, id, Owner(userID))
}

// SetCategory 設定分類標籤，空字串表示清除
func (s *Service) SetCategory(ctx context.Context, userID, id, category string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", common.NewValidationError("entry id is required")
	}
	category = strings.TrimSpace(category)
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return "", common.NewValidationError("category must be at most 50 characters")
	}
	if err := s.store.UpdateFields(ctx, id, Owner(userID), Fields{Category: &category}); err != nil {
		return "", err
	}
	return category, nil
}
