package grid

// RenderState is the top-level state of a render pass.
type RenderState int

// Render states. Only StateReady activates sorting, selection, windowing and pagination.
const (
	StateLoading RenderState = iota
	StateError
	StateEmpty
	StateReady
)

// String returns the state name.
func (s RenderState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Resolve derives the render state from the external inputs. Loading wins over an error,
// an error wins over an empty dataset.
func Resolve(loading bool, errMsg string, rowCount int) RenderState {
	switch {
	case loading:
		return StateLoading
	case errMsg != "":
		return StateError
	case rowCount == 0:
		return StateEmpty
	default:
		return StateReady
	}
}
