package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers maps each command type to its implementation. Commands without
// arguments act on the caller's current selection.
type Handlers struct {
	Add    func(TaskArgs) (Result, error)
	Edit   func(TaskArgs) (Result, error)
	Done   func() (Result, error)
	Undo   func() (Result, error)
	Delete func() (Result, error)
	Start  func() (Result, error)
	Pause  func() (Result, error)
	Finish func() (Result, error)
	Find   func(FindArgs) (Result, error)
	Export func(ExportArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Task)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Task)
	case TypeFind:
		if handlers.Find == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Find(*cmd.Find)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	}

	var fn func() (Result, error)
	switch cmd.Type {
	case TypeDone:
		fn = handlers.Done
	case TypeUndo:
		fn = handlers.Undo
	case TypeDelete:
		fn = handlers.Delete
	case TypeStart:
		fn = handlers.Start
	case TypePause:
		fn = handlers.Pause
	case TypeFinish:
		fn = handlers.Finish
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
	if fn == nil {
		return Result{}, missing(cmd.Type)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
