package mailbox

type Status struct {
	// The mailbox name.
	Name string

	// The mailbox flags.
	Flags []string

	// The number of messages in this mailbox.
	Messages uint32
	// Together with a UID, it is a unique identifier for a message.
	// Must be greater than or equal to 1.
	UidValidity uint32
	// The next UID the server will assign.
	UidNext uint32
}
