package service

import (
	"testing"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   domain.Tier
	}{
		{0, domain.TierBronze},
		{499, domain.TierBronze},
		{500, domain.TierSilver},
		{1999, domain.TierSilver},
		{2000, domain.TierGold},
		{4999, domain.TierGold},
		{5000, domain.TierPlatinum},
		{100000, domain.TierPlatinum},
	}
	for _, tt := range tests {
		if got := TierForPoints(tt.points); got != tt.want {
			t.Errorf("TierForPoints(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
}

func TestPointsForOrder(t *testing.T) {
	tests := []struct {
		total float64
		tier  domain.Tier
		want  int
	}{
		{1000, domain.TierBronze, 10},
		{1000, domain.TierSilver, 15},
		{1000, domain.TierGold, 20},
		{1000, domain.TierPlatinum, 25},
		{250, domain.TierSilver, 3}, // 2.5 * 1.5 truncates
		{99, domain.TierBronze, 0},
	}
	for _, tt := range tests {
		if got := PointsForOrder(tt.total, tt.tier); got != tt.want {
			t.Errorf("PointsForOrder(%.0f, %s) = %d, want %d", tt.total, tt.tier, got, tt.want)
		}
	}
}

func TestPointsForDelivery(t *testing.T) {
	if got := PointsForDelivery(3, domain.TierBronze); got != 50 {
		t.Errorf("bronze rating 3 = %d, want 50", got)
	}
	if got := PointsForDelivery(4, domain.TierBronze); got != 150 {
		t.Errorf("bronze rating 4 = %d, want 150", got)
	}
	if got := PointsForDelivery(5, domain.TierPlatinum); got != 225 {
		t.Errorf("platinum rating 5 = %d, want 225", got)
	}
	if got := PointsForDelivery(2, domain.TierGold); got != 100 {
		t.Errorf("gold rating 2 = %d, want 100", got)
	}
}
