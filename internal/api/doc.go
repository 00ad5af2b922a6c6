// Package api implements the HTTP layer: chi handlers for deck management
// and the game loop, JSON request/response models, and the mapping from
// internal errors onto status codes. Handlers never leak raw internal
// errors to clients.
package api
