package store

import "github.com/zalar/inventar/internal/model"

// assertOwnership is the single authorization gate for record mutations.
// Every mutator calls this before writing; only the recorded owner may
// mutate or delete a record directly.
func assertOwnership(ownerID string, actor model.Actor) error {
	if actor.UID == "" {
		return model.ErrUnauthenticated
	}
	if ownerID != actor.UID {
		return model.ErrPermissionDenied
	}
	return nil
}
