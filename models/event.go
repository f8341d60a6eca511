package models

type EventType string

const (
	EventInput EventType = "input"
	EventFocus EventType = "focus"
	EventClick EventType = "click"
	EventPopup EventType = "popup"
)

// Event событие поля выбора валюты
type Event struct {
	Type      EventType `json:"type" binding:"required,oneof=input focus click popup"`
	Text      string    `json:"text"`
	PopupOpen bool      `json:"popup_open"`
}
