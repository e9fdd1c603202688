package service

import (
	"context"

	"github.com/khoahotran/devconnector/internal/domain/profile"
)

type ProfileEventPublisher interface {
	PublishProfileEvent(ctx context.Context, evt profile.Event) error
}
