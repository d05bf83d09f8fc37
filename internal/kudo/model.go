// File: internal/kudo/model.go
package kudo

import (
	"strings"
	"time"

	"kudos_web/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Color is a background or text color of a kudo card.
type Color string

const (
	ColorRed    Color = "RED"
	ColorGreen  Color = "GREEN"
	ColorYellow Color = "YELLOW"
	ColorBlue   Color = "BLUE"
	ColorWhite  Color = "WHITE"
)

// Colors lists every color in display order.
var Colors = []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorWhite}

// Valid reports whether c is a known color.
func (c Color) Valid() bool {
	for _, known := range Colors {
		if c == known {
			return true
		}
	}
	return false
}

// CSS is the lower-case name used in class names.
func (c Color) CSS() string { return strings.ToLower(string(c)) }

// Emoji is the reaction shown on a kudo card.
type Emoji string

const (
	EmojiThumbsUp Emoji = "THUMBSUP"
	EmojiParty    Emoji = "PARTY"
	EmojiHandsUp  Emoji = "HANDSUP"
)

// Emojis lists every emoji in display order.
var Emojis = []Emoji{EmojiThumbsUp, EmojiParty, EmojiHandsUp}

var glyphs = map[Emoji]string{
	EmojiThumbsUp: "👍",
	EmojiParty:    "🎉",
	EmojiHandsUp:  "🙌🏻",
}

func (e Emoji) Valid() bool {
	_, ok := glyphs[e]
	return ok
}

// Glyph is the rendered emoji character.
func (e Emoji) Glyph() string { return glyphs[e] }

// Style is stored inline on the kudos table as style_* columns.
type Style struct {
	BackgroundColor Color `gorm:"type:varchar(16);not null"`
	TextColor       Color `gorm:"type:varchar(16);not null"`
	Emoji           Emoji `gorm:"type:varchar(16);not null;index"`
}

// DefaultStyle is preselected on the compose form.
func DefaultStyle() Style {
	return Style{BackgroundColor: ColorRed, TextColor: ColorWhite, Emoji: EmojiThumbsUp}
}

// Kudo is a message of appreciation from one user to another.
type Kudo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Message     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	Style       Style     `gorm:"embedded;embeddedPrefix:style_"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Author      user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Recipient   user.User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

func (Kudo) TableName() string {
	return "kudos"
}

func (k *Kudo) BeforeCreate(_ *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// SendInput is the compose form. Empty style fields fall back to DefaultStyle.
type SendInput struct {
	Message         string
	BackgroundColor string
	TextColor       string
	Emoji           string
}
