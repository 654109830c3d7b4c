package models

import (
	"strings"

	"github.com/google/uuid"
)

type PushTarget string

const (
	PushTargetAllDevices  PushTarget = "allDevices"
	PushTargetTestDevices PushTarget = "testDevices"
	PushTargetSegment     PushTarget = "segment"
)

var PushTargets = []PushTarget{PushTargetAllDevices, PushTargetTestDevices, PushTargetSegment}

func (t PushTarget) Title() string {
	switch t {
	case PushTargetAllDevices:
		return "All Devices"
	case PushTargetTestDevices:
		return "Test Devices"
	case PushTargetSegment:
		return "Segment"
	default:
		return string(t)
	}
}

type PushLanguage string

const (
	PushLanguageAll PushLanguage = "all"
	PushLanguageDE  PushLanguage = "de"
	PushLanguageEN  PushLanguage = "en"
)

var PushLanguages = []PushLanguage{PushLanguageAll, PushLanguageDE, PushLanguageEN}

func (l PushLanguage) Title() string {
	switch l {
	case PushLanguageAll:
		return "All Languages"
	case PushLanguageDE:
		return "DE"
	case PushLanguageEN:
		return "EN"
	default:
		return strings.ToUpper(string(l))
	}
}

// PushMessageTemplate is a reusable draft of a push message.
type PushMessageTemplate struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Title           string       `json:"title"`
	BodyText        string       `json:"bodyText"`
	Target          PushTarget   `json:"target"`
	IsSoundEnabled  bool         `json:"isSoundEnabled"`
	IsBadgeEnabled  bool         `json:"isBadgeEnabled"`
	BadgeCount      int          `json:"badgeCount"`
	IsTimeSensitive bool         `json:"isTimeSensitive"`
	Language        PushLanguage `json:"language"`
	URLString       string       `json:"urlString"`
}

// NewPushMessageTemplate returns a template with the default options: all
// devices, all languages, sound on and a badge count of one.
func NewPushMessageTemplate(name string) PushMessageTemplate {
	return PushMessageTemplate{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Target:         PushTargetAllDevices,
		IsSoundEnabled: true,
		BadgeCount:     1,
		Language:       PushLanguageAll,
	}
}
