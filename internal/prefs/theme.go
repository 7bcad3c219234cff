// Package prefs persists visitor display preferences.
package prefs

import (
	"context"
	"fmt"
	"strings"

	"finitefield.org/stays-web/internal/kvstore"
)

// ThemeKey is the cache key holding the colour theme.
const ThemeKey = "theme"

// Theme is the page colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps stored or submitted text to a Theme; anything unrecognised is light.
func ParseTheme(raw string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(raw))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool { return t == ThemeDark }

// LoadTheme reads the stored theme, defaulting to light.
func LoadTheme(ctx context.Context, store kvstore.Store) (Theme, error) {
	raw, _, err := store.Get(ctx, ThemeKey)
	if err != nil {
		return ThemeLight, fmt.Errorf("prefs: load theme: %w", err)
	}
	return ParseTheme(raw), nil
}

// SaveTheme persists t.
func SaveTheme(ctx context.Context, store kvstore.Store, t Theme) error {
	if err := store.Set(ctx, ThemeKey, string(ParseTheme(string(t)))); err != nil {
		return fmt.Errorf("prefs: save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new value.
func ToggleTheme(ctx context.Context, store kvstore.Store) (Theme, error) {
	cur, err := LoadTheme(ctx, store)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	return next, SaveTheme(ctx, store, next)
}
