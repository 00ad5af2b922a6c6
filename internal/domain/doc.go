// Package domain contains the core business entities, value objects, and
// domain logic of the application: decks, flashcards, per-card review
// state, and the combat entities (player, enemy) used by the battle loop.
// It represents the heart of the system, independent of any specific
// infrastructure or delivery mechanism.
package domain
