package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeUndo   Type = "undo"
	TypeDelete Type = "delete"
	TypeStart  Type = "start"
	TypePause  Type = "pause"
	TypeFinish Type = "finish"
	TypeFind   Type = "find"
	TypeExport Type = "export"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TaskArgs carries the fields of add and edit. Options are written as
// key:value tokens after the title; desc: swallows the rest of the line.
type TaskArgs struct {
	Title        string
	Description  string
	Tags         string
	Due          string
	WorkMinutes  int
	BreakMinutes int
}

type FindArgs struct {
	Query string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Task   *TaskArgs
	Find   *FindArgs
	Export *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseTask(input, TypeAdd, args)
	case TypeEdit:
		return parseTask(input, TypeEdit, args)
	case TypeDone, TypeUndo, TypeDelete, TypeStart, TypePause, TypeFinish:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeFind:
		return Command{Type: TypeFind, Raw: input, Find: &FindArgs{Query: strings.Join(args, " ")}}, nil
	case TypeExport:
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: strings.Join(args, " ")}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTask(raw string, typ Type, args []string) (Command, error) {
	out := TaskArgs{}
	title := make([]string, 0, len(args))
	for i, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok {
			title = append(title, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "tags", "tag":
			out.Tags = value
		case "due":
			out.Due = value
		case "desc":
			out.Description = strings.TrimSpace(strings.Join(append([]string{value}, args[i+1:]...), " "))
			return finishTask(raw, typ, title, out)
		case "work":
			n, err := parseMinutes(key, value)
			if err != nil {
				return Command{}, err
			}
			out.WorkMinutes = n
		case "break":
			n, err := parseMinutes(key, value)
			if err != nil {
				return Command{}, err
			}
			out.BreakMinutes = n
		default:
			title = append(title, arg)
		}
	}
	return finishTask(raw, typ, title, out)
}

func finishTask(raw string, typ Type, title []string, out TaskArgs) (Command, error) {
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a title", typ)}
	}
	return Command{Type: typ, Raw: raw, Task: &out}, nil
}

func parseMinutes(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s expects a positive number of minutes, got %q", key, value)}
	}
	return n, nil
}
