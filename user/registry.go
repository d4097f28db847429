package user

// Registry is the id -> User map the "userinfo" string table's
// Populate hook feeds (spec.md §4.5.1 step 6).
type Registry struct {
	users map[int]*User
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[int]*User)}
}

// Update decodes data and stores (or replaces) the User at index,
// returning only a decode error. Matches the UserInfoSink signature
// stringtable.Populate expects.
func (reg *Registry) Update(index int, data []byte) error {
	u, err := Deserialize(index, data)
	if err != nil {
		return err
	}
	u.Name = BestEffortText(u.Name)
	u.FriendsName = BestEffortText(u.FriendsName)
	reg.users[index] = u
	return nil
}

// Get returns the user at index, if any.
func (reg *Registry) Get(index int) (*User, bool) {
	u, ok := reg.users[index]
	return u, ok
}

// Len returns the number of known users.
func (reg *Registry) Len() int { return len(reg.users) }
