package wellness

import (
	"fmt"
	"time"
)

// Meditation is a guided meditation track.
type Meditation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Featured    bool   `json:"featured"`
	AudioURL    string `json:"audio_url,omitempty"`
}

func (m Meditation) EntityID() string { return m.ID }

func (m Meditation) WithEntityID(id string) Meditation {
	m.ID = id
	return m
}

// CrisisResource is a hotline or support service.
type CrisisResource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Available   string `json:"available"`
	Website     string `json:"website,omitempty"`
	Category    string `json:"category"`
}

func (c CrisisResource) EntityID() string { return c.ID }

func (c CrisisResource) WithEntityID(id string) CrisisResource {
	c.ID = id
	return c
}

// PlayerState is the state of the meditation player.
type PlayerState string

const (
	PlayerIdle      PlayerState = "idle"
	PlayerPlaying   PlayerState = "playing"
	PlayerPaused    PlayerState = "paused"
	PlayerCompleted PlayerState = "completed"
)

// PlayerStatus is a snapshot of the player.
type PlayerStatus struct {
	State        PlayerState   `json:"state"`
	MeditationID string        `json:"meditation_id,omitempty"`
	Title        string        `json:"title,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
	Remaining    time.Duration `json:"remaining"`
	Volume       int           `json:"volume"`
	Muted        bool          `json:"muted"`
}

// Clock renders elapsed time as mm:ss.
func (p PlayerStatus) Clock() string {
	total := int(p.Elapsed.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Section is the top-level tab of the wellness panel.
type Section string

const (
	SectionCrisis     Section = "crisis"
	SectionMeditation Section = "meditation"
)

// MeditationFilter narrows the meditation list.
type MeditationFilter struct {
	Query        string
	Category     string
	Level        string
	FeaturedOnly bool
}

// CrisisFilter narrows the crisis resource list.
type CrisisFilter struct {
	Query    string
	Category string
}
