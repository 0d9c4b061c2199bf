package layout

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the spacing constants the layout engine works with. All
// values are in abstract user units (typically pixels in the renderer).
// Start from [DefaultConfig] and override fields, or load overrides from a
// TOML file with [LoadConfigFile].
type Config struct {
	// CharWidth is the width of one display cell of text.
	CharWidth float64 `toml:"char_width"`
	// LineHeight is the height of one line of text.
	LineHeight float64 `toml:"line_height"`

	// MinParticipantWidth is the floor for a participant head box.
	MinParticipantWidth float64 `toml:"min_participant_width"`
	// ParticipantPadding is the horizontal padding inside a head box.
	ParticipantPadding float64 `toml:"participant_padding"`
	// ParticipantHeight is the height of the head box row.
	ParticipantHeight float64 `toml:"participant_height"`
	// ParticipantSpacing is the base gap between adjacent lifelines.
	ParticipantSpacing float64 `toml:"participant_spacing"`
	// CollisionGap keeps adjacent head boxes from touching.
	CollisionGap float64 `toml:"collision_gap"`

	// EntrySpacing is the base vertical advance per message.
	EntrySpacing float64 `toml:"entry_spacing"`
	// DelaySlope is the extra height per unit of message delay.
	DelaySlope float64 `toml:"delay_slope"`
	// SelfLoopWidth is the horizontal extent of a self-message loop.
	SelfLoopWidth float64 `toml:"self_loop_width"`

	// NotePadding pads note text on all sides.
	NotePadding float64 `toml:"note_padding"`
	// NoteGap separates a left-of/right-of note from its lifeline.
	NoteGap float64 `toml:"note_gap"`
	// DividerPadding pads divider text vertically.
	DividerPadding float64 `toml:"divider_padding"`

	// FragmentHeaderHeight is the height of a fragment's operator header.
	FragmentHeaderHeight float64 `toml:"fragment_header_height"`
	// FragmentPadding is the fragment's inner bottom padding.
	FragmentPadding float64 `toml:"fragment_padding"`
	// FragmentMargin separates a fragment from the node below it.
	FragmentMargin float64 `toml:"fragment_margin"`
	// FragmentInset widens a fragment box beyond its outermost lifelines.
	FragmentInset float64 `toml:"fragment_inset"`
	// ElseHeaderHeight is the height of one else-clause divider label.
	ElseHeaderHeight float64 `toml:"else_header_height"`

	// SpaceIncrement is the advance of a bare "space" directive.
	SpaceIncrement float64 `toml:"space_increment"`
	// TitleHeight is the vertical room reserved by a title directive.
	TitleHeight float64 `toml:"title_height"`
	// Margin frames the whole diagram.
	Margin float64 `toml:"margin"`
}

// DefaultConfig returns the standard spacing constants.
func DefaultConfig() Config {
	return Config{
		CharWidth:            8,
		LineHeight:           16,
		MinParticipantWidth:  80,
		ParticipantPadding:   16,
		ParticipantHeight:    40,
		ParticipantSpacing:   100,
		CollisionGap:         10,
		EntrySpacing:         34,
		DelaySlope:           12,
		SelfLoopWidth:        54,
		NotePadding:          8,
		NoteGap:              12,
		DividerPadding:       8,
		FragmentHeaderHeight: 28,
		FragmentPadding:      12,
		FragmentMargin:       10,
		FragmentInset:        14,
		ElseHeaderHeight:     22,
		SpaceIncrement:       20,
		TitleHeight:          34,
		Margin:               20,
	}
}

// LoadConfigFile reads TOML overrides from path on top of the defaults.
// Fields absent from the file keep their default values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load layout config %s: %w", path, err)
	}
	return cfg, nil
}
