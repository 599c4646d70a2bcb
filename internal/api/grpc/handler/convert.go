package handler

import (
	"github.com/google/uuid"

	"github.com/amit-tzadok/LDR/internal/api/grpc/proto"
	"github.com/amit-tzadok/LDR/internal/model"
)

func toProtoSession(t model.Tokens) *proto.Session {
	return &proto.Session{
		UserID:       t.UserID.String(),
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
	}
}

func toProtoMemberMeta(m model.MemberMeta) proto.MemberMeta {
	return proto.MemberMeta{
		ID:       m.ID.String(),
		Name:     m.Name,
		Email:    m.Email,
		PhotoURL: m.PhotoURL,
	}
}

func toProtoSpace(s model.Space) *proto.Space {
	members := make([]string, 0, len(s.Members))
	for _, id := range s.Members {
		members = append(members, id.String())
	}

	meta := make(map[string]proto.MemberMeta, len(s.MembersMeta))
	for id, m := range s.MembersMeta {
		if m.ID == uuid.Nil {
			m.ID = id
		}
		meta[id.String()] = toProtoMemberMeta(m)
	}

	return &proto.Space{
		ID:             s.ID,
		Members:        members,
		PairInviteCode: s.PairInviteCode,
		TrioInviteCode: s.TrioInviteCode,
		MembersMeta:    meta,
		CustomName:     s.CustomName,
		Status:         string(s.Status),
		CreatedBy:      s.CreatedBy.String(),
		CreatedAt:      s.CreatedAt,
	}
}

func toProtoSpaceView(v model.SpaceView) *proto.Space {
	out := toProtoSpace(v.Space)
	out.DisplayName = v.DisplayName
	out.PairInviteLink = v.PairInviteLink
	out.TrioInviteLink = v.TrioInviteLink
	out.Selected = v.Selected
	out.ResolvedMembers = make([]proto.Member, 0, len(v.ResolvedMembers))
	for _, m := range v.ResolvedMembers {
		out.ResolvedMembers = append(out.ResolvedMembers, proto.Member{
			MemberMeta: toProtoMemberMeta(m.MemberMeta),
			Source:     string(m.Source),
		})
	}
	return out
}

func toProtoProfile(p model.Profile) *proto.Profile {
	couples := p.Couples
	if couples == nil {
		couples = []string{}
	}
	return &proto.Profile{
		ID:               p.ID.String(),
		Name:             p.Name,
		Email:            p.Email,
		PhotoURL:         p.PhotoURL,
		Couples:          couples,
		ActiveCoupleCode: p.ActiveCoupleCode,
		CoupleCode:       p.CoupleCode,
		CreatedAt:        p.CreatedAt,
	}
}

func toProtoItem(i model.Item) *proto.Item {
	return &proto.Item{
		ID:         i.ID.String(),
		SpaceID:    i.SpaceID,
		Collection: string(i.Collection),
		Title:      i.Title,
		Fields:     i.Fields,
		Completed:  i.Completed,
		CreatedBy:  i.CreatedBy.String(),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

func toProtoEvent(e model.Event) *proto.Event {
	out := &proto.Event{
		Kind:       string(e.Kind),
		SpaceID:    e.SpaceID,
		Collection: string(e.Collection),
		ActorID:    e.ActorID.String(),
		At:         e.At,
	}
	if e.ItemID != uuid.Nil {
		out.ItemID = e.ItemID.String()
	}
	return out
}

func toProtoSpaceSettings(spaceID string, s model.SpaceSettings) *proto.SpaceSettings {
	return &proto.SpaceSettings{
		SpaceID:           spaceID,
		NextMeetDate:      model.FormatDate(s.NextMeetDate),
		RelationshipStart: model.FormatDate(s.RelationshipStart),
	}
}

func toSettingsPatch(req *proto.UpdateSpaceSettingsRequest) (model.SpaceSettingsPatch, error) {
	var patch model.SpaceSettingsPatch
	if req.NextMeetDate != nil {
		date, err := model.ParseDate(*req.NextMeetDate)
		if err != nil {
			return model.SpaceSettingsPatch{}, err
		}
		patch.NextMeetDate = &model.DateChange{Date: date}
	}
	if req.RelationshipStart != nil {
		date, err := model.ParseDate(*req.RelationshipStart)
		if err != nil {
			return model.SpaceSettingsPatch{}, err
		}
		patch.RelationshipStart = &model.DateChange{Date: date}
	}
	return patch, nil
}
