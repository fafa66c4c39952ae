package core

// Handle identifies an entity for its whole lifetime
// Handles are never reused within a session, so a stale handle resolves to nothing
// rather than to whichever entity took over a registry slot
type Handle uint32

// HandleNone is the zero handle, never assigned
const HandleNone Handle = 0
