// Package inject provides lazily resolved, memoized service fields.
//
// A Field resolves its service from the registry stored under di.RegistryKey
// on first Get and keeps the result:
//
//	type Handler struct {
//	    users *inject.Field[UserService]
//	}
//
//	func NewHandler() *Handler {
//	    return &Handler{users: inject.New[UserService]()}
//	}
//
//	func (h *Handler) Serve() { h.users.Get().List() }
//
// The registry is read at first Get, not at construction, so fields may be
// declared before any assembly is applied. Once resolved, a field never
// re-resolves; re-registering its key later does not affect it.
package inject
