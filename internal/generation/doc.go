// Package generation defines the boundary between the application core and
// external LLM services used to author flashcards. The application asks for
// cards on a topic; how they get written is an adapter concern.
package generation
