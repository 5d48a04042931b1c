package services

import (
	"context"
	"testing"

	"github.com/churchhub/apiserver/types"
)

type recordingEventRepo struct {
	EventRepository
	gotLimit int
}

func (r *recordingEventRepo) ListUpcoming(ctx context.Context, limit int) ([]types.Event, error) {
	r.gotLimit = limit
	return nil, nil
}

func TestListUpcomingLimitDefaults(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, 5},
		{"negative falls back to default", -3, 5},
		{"small value passes through", 8, 8},
		{"oversized value clamped", 500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingEventRepo{}
			svc := NewEventService(repo)
			if _, err := svc.ListUpcoming(context.Background(), tt.limit); err != nil {
				t.Fatalf("list upcoming: %v", err)
			}
			if repo.gotLimit != tt.want {
				t.Errorf("limit %d: expected repo to see %d, got %d", tt.limit, tt.want, repo.gotLimit)
			}
		})
	}
}
