package sim

import "github.com/pkg/errors"

// Errors returned by the engine. Callers match them with errors.Is; the
// returned values are wrapped with line, net or time context.
var (
	// ErrMalformedGateLine is returned when a netlist line cannot describe a gate.
	ErrMalformedGateLine = errors.New("malformed gate line")
	// ErrUnknownGateOperation is returned for an operation outside AND, OR, NAND, NOR, XOR, NOT.
	ErrUnknownGateOperation = errors.New("unknown gate operation")
	// ErrMalformedStimulusLine is returned when a stimulus line is neither an advance nor an assignment.
	ErrMalformedStimulusLine = errors.New("malformed stimulus line")
	// ErrUnknownNet is returned when a stimulus or gate refers to a net the circuit does not have.
	ErrUnknownNet = errors.New("unknown net")
	// ErrSnapshotMismatch is returned when a snapshot was not built over the circuit's net table.
	ErrSnapshotMismatch = errors.New("snapshot does not belong to circuit")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStabilizationBoundExceeded marks a non-fatal outcome: the circuit did
	// not reach a fixed point within the iteration bound. It only ever appears
	// in Result.Warnings, never as a returned error.
	ErrStabilizationBoundExceeded = errors.New("stabilization bound exceeded")
)
