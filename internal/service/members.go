package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/amit-tzadok/LDR/internal/logger"
	"github.com/amit-tzadok/LDR/internal/model"
)

// resolveMembers returns the space members in join order, preferring the live
// profile, then the cached membersMeta entry, then a bare placeholder.
// A failed profile read never fails the resolution.
func resolveMembers(ctx context.Context, profiles model.ProfileStore, space model.Space, log *logger.Logger) []model.ResolvedMember {
	out := make([]model.ResolvedMember, 0, len(space.Members))
	for _, id := range space.Members {
		profile, err := profiles.GetByID(ctx, id)
		if err == nil {
			out = append(out, model.ResolvedMember{MemberMeta: model.MemberMetaFromProfile(profile), Source: model.MemberSourceProfile})
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			log.Debug("Space service: member profile unreadable, using cached meta",
				"space_id", space.ID,
				"user_id", id,
				"error", err.Error())
		}

		if meta, ok := space.MembersMeta[id]; ok {
			meta.ID = id
			out = append(out, model.ResolvedMember{MemberMeta: meta, Source: model.MemberSourceMeta})
			continue
		}
		out = append(out, model.ResolvedMember{MemberMeta: model.MemberMeta{ID: id}, Source: model.MemberSourcePlaceholder})
	}
	return out
}

func memberNames(members []model.ResolvedMember) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

func publishBestEffort(ctx context.Context, broker model.Broker, event model.Event, log *logger.Logger) {
	if broker == nil {
		return
	}
	if err := broker.Publish(ctx, event); err != nil {
		log.Warn("failed to publish space event",
			"space_id", event.SpaceID,
			"kind", event.Kind,
			"error", err.Error())
	}
}

func readFailure(err error) error {
	return fmt.Errorf("%w: %w", model.ErrReadFailure, err)
}
