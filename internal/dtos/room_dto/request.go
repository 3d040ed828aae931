package room_dto

import (
	"github.com/daniel-winkler/showdown/internal/entity"
)

type CreateRoomRequest struct {
	UserName   string                   `json:"userName" validate:"required,min=1,max=50"`
	RoomName   string                   `json:"roomName" validate:"omitempty,max=100"`
	RoundNames []string                 `json:"roundNames" validate:"required,min=1,dive,required,max=200"`
	Settings   *entity.SettingsOverride `json:"settings,omitempty"`
}

type JoinRoomRequest struct {
	UserName string `json:"userName" validate:"required,min=1,max=50"`
}
