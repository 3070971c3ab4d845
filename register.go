package octocore

// RegisterDefaultCommands installs entries into reg, replacing the
// teacher's init()-time global-registration pattern (spec.md §9: "do not
// rely on unordered global initialization"). Callers assemble a state
// family's full command set — typically from several sibling packages —
// and call this once during state-family initialization.
func RegisterDefaultCommands(reg *CommandRegistry, entries ...RegistryEntry) error {
	for _, e := range entries {
		if err := reg.Register(e.Id, e.Accepts, e.Apply, e.Revert); err != nil {
			return err
		}
	}
	return nil
}
