package octocore

import "github.com/drpcorg/octocore/rdx"

// CommandId is the author-chosen identifier for a command type, unique
// within its CommandRegistry. Positive values are reserved for authors;
// negative values are reserved for core use (spec.md §6).
type CommandId int32

// Command is a façade over an ArgumentMap: a self-describing, replayable
// mutation. Per spec.md §4.3's "no instance state rule," concrete command
// types must embed CommandBase and add no other fields, so that a command
// can be reconstructed from just (CommandId, ArgMap) alone for replay.
type Command interface {
	CommandId() CommandId
	Args() *rdx.ArgMap
}

// CommandBase is the base every concrete command type embeds. It owns the
// argument-map handle and the command's id.
type CommandBase struct {
	id   CommandId
	args *rdx.ArgMap
}

// NewCommandBase constructs a CommandBase around a fresh, empty argument
// map with the given id. Callers populate fields via the typed setters
// generated for their command type before submitting it to a State.
func NewCommandBase(id CommandId) CommandBase {
	return CommandBase{id: id, args: rdx.NewArgMap()}
}

// FromArgs reconstructs a CommandBase from a previously captured
// (CommandId, ArgMap) pair, used by the CLI and the HTTP gateway to submit
// a command received as an id plus arguments (spec.md §9 "reconstruction
// of a command from its id + args"). State's own undo/redo replay does not
// go through FromArgs: it hands the recorded ArgMap straight to the
// registered apply/revert functions.
func FromArgs(id CommandId, args *rdx.ArgMap) CommandBase {
	return CommandBase{id: id, args: args}
}

// CommandId returns the command's registry key.
func (c CommandBase) CommandId() CommandId { return c.id }

// Args returns a shared handle onto the command's argument map. Sharing
// bumps the map's refcount so that a later mutation through c (or through
// another shared handle) copies-on-write rather than corrupting a snapshot
// a caller already captured via Args.
func (c CommandBase) Args() *rdx.ArgMap { return c.args.Share() }

// GetString reads a string-typed argument field, generated conceptually
// per spec.md §4.3's field-declaration schema.
func (c CommandBase) GetString(field rdx.FieldId) string {
	s, _ := c.args.Get(field).UnwrapString()
	return s
}

// SetString writes a string-typed argument field.
func (c CommandBase) SetString(field rdx.FieldId, v string) {
	c.args.Set(field, rdx.WrapString(v))
}

// HasString reports whether field is present and string-typed.
func (c CommandBase) HasString(field rdx.FieldId) bool {
	return c.args.Get(field).CanUnwrapString()
}

// GetI64 reads an i64-typed argument field.
func (c CommandBase) GetI64(field rdx.FieldId) int64 {
	v, _ := c.args.Get(field).UnwrapI64()
	return v
}

// SetI64 writes an i64-typed argument field.
func (c CommandBase) SetI64(field rdx.FieldId, v int64) {
	c.args.Set(field, rdx.WrapI64(v))
}

// HasI64 reports whether field is present and i64-typed.
func (c CommandBase) HasI64(field rdx.FieldId) bool {
	return c.args.Get(field).CanUnwrapI64()
}

// GetI32 reads an i32-typed argument field.
func (c CommandBase) GetI32(field rdx.FieldId) int32 {
	v, _ := c.args.Get(field).UnwrapI32()
	return v
}

// SetI32 writes an i32-typed argument field.
func (c CommandBase) SetI32(field rdx.FieldId, v int32) {
	c.args.Set(field, rdx.WrapI32(v))
}

// HasI32 reports whether field is present and i32-typed.
func (c CommandBase) HasI32(field rdx.FieldId) bool {
	return c.args.Get(field).CanUnwrapI32()
}

// GetF64 reads an f64-typed argument field.
func (c CommandBase) GetF64(field rdx.FieldId) float64 {
	v, _ := c.args.Get(field).UnwrapF64()
	return v
}

// SetF64 writes an f64-typed argument field.
func (c CommandBase) SetF64(field rdx.FieldId, v float64) {
	c.args.Set(field, rdx.WrapF64(v))
}

// HasF64 reports whether field is present and f64-typed.
func (c CommandBase) HasF64(field rdx.FieldId) bool {
	return c.args.Get(field).CanUnwrapF64()
}

// GetBool reads a bool-typed argument field.
func (c CommandBase) GetBool(field rdx.FieldId) bool {
	v, _ := c.args.Get(field).UnwrapBool()
	return v
}

// SetBool writes a bool-typed argument field.
func (c CommandBase) SetBool(field rdx.FieldId, v bool) {
	c.args.Set(field, rdx.WrapBool(v))
}

// HasBool reports whether field is present and bool-typed.
func (c CommandBase) HasBool(field rdx.FieldId) bool {
	return c.args.Get(field).CanUnwrapBool()
}

// GetListString reads a list-of-string typed argument field.
func (c CommandBase) GetListString(field rdx.FieldId) []string {
	v, _ := c.args.Get(field).UnwrapListString()
	return v
}

// SetListString writes a list-of-string typed argument field.
func (c CommandBase) SetListString(field rdx.FieldId, v []string) {
	c.args.Set(field, rdx.WrapListString(v))
}

// Result is a façade over a ResultMap with a mutability flag (spec.md §3).
// It is writable only while Mutable is true, i.e. during the first apply
// of the command that owns it.
type Result struct {
	values  *rdx.ArgMap
	mutable bool
}

// NewResult constructs a Result over a fresh, empty, mutable map. State
// calls this once per Run and passes the Result to the registered apply
// function.
func NewResult() *Result {
	return &Result{values: rdx.NewArgMap(), mutable: true}
}

// ResultFromValues wraps a previously captured result map as immutable,
// used for revert and for replay (mutability=false).
func ResultFromValues(values *rdx.ArgMap) *Result {
	return &Result{values: values, mutable: false}
}

// Values returns the underlying map handle.
func (r *Result) Values() *rdx.ArgMap { return r.values }

// Mutable reports whether this Result may currently be written to.
func (r *Result) Mutable() bool { return r.mutable }

// Freeze clears the mutable flag; State calls this once the first apply
// returns, before the result is admitted to the undo deque.
func (r *Result) Freeze() { r.mutable = false }

func (r *Result) mustBeMutable() error {
	if !r.mutable {
		return ErrResultMisuse("result field written outside the first apply")
	}
	return nil
}

// SetString writes a string-typed result field. Fails with
// KindResultMisuse if called outside the first apply.
func (r *Result) SetString(field rdx.FieldId, v string) error {
	if err := r.mustBeMutable(); err != nil {
		return err
	}
	r.values.Set(field, rdx.WrapString(v))
	return nil
}

// GetString reads a string-typed result field.
func (r *Result) GetString(field rdx.FieldId) string {
	s, _ := r.values.Get(field).UnwrapString()
	return s
}

// HasString reports whether field is present and string-typed.
func (r *Result) HasString(field rdx.FieldId) bool {
	return r.values.Get(field).CanUnwrapString()
}

// SetI64 writes an i64-typed result field. Fails with KindResultMisuse if
// called outside the first apply.
func (r *Result) SetI64(field rdx.FieldId, v int64) error {
	if err := r.mustBeMutable(); err != nil {
		return err
	}
	r.values.Set(field, rdx.WrapI64(v))
	return nil
}

// GetI64 reads an i64-typed result field.
func (r *Result) GetI64(field rdx.FieldId) int64 {
	v, _ := r.values.Get(field).UnwrapI64()
	return v
}

// HasI64 reports whether field is present and i64-typed.
func (r *Result) HasI64(field rdx.FieldId) bool {
	return r.values.Get(field).CanUnwrapI64()
}

// SetObjectId writes an ObjectId-typed result field (stored as i64).
// Fails with KindResultMisuse if called outside the first apply.
func (r *Result) SetObjectId(field rdx.FieldId, v rdx.ObjectId) error {
	return r.SetI64(field, int64(v))
}

// GetObjectId reads an ObjectId-typed result field.
func (r *Result) GetObjectId(field rdx.FieldId) rdx.ObjectId {
	return rdx.ObjectId(r.GetI64(field))
}

// SetBool writes a bool-typed result field. Fails with KindResultMisuse if
// called outside the first apply.
func (r *Result) SetBool(field rdx.FieldId, v bool) error {
	if err := r.mustBeMutable(); err != nil {
		return err
	}
	r.values.Set(field, rdx.WrapBool(v))
	return nil
}

// GetBool reads a bool-typed result field.
func (r *Result) GetBool(field rdx.FieldId) bool {
	v, _ := r.values.Get(field).UnwrapBool()
	return v
}

// HasBool reports whether field is present and bool-typed.
func (r *Result) HasBool(field rdx.FieldId) bool {
	return r.values.Get(field).CanUnwrapBool()
}

// SetListI64 writes a list-of-i64 typed result field. Commands that mint
// a batch of object ids during their first apply record them here so a
// later replay (redo, or a rebuild from a recorded log) can read the same
// ids back instead of minting fresh ones (spec.md §4.5). Fails with
// KindResultMisuse if called outside the first apply.
func (r *Result) SetListI64(field rdx.FieldId, v []int64) error {
	if err := r.mustBeMutable(); err != nil {
		return err
	}
	r.values.Set(field, rdx.WrapListI64(v))
	return nil
}

// GetListI64 reads a list-of-i64 typed result field.
func (r *Result) GetListI64(field rdx.FieldId) []int64 {
	v, _ := r.values.Get(field).UnwrapListI64()
	return v
}

// HasListI64 reports whether field is present and list-of-i64 typed.
func (r *Result) HasListI64(field rdx.FieldId) bool {
	return r.values.Get(field).CanUnwrapListI64()
}
