// Package student contains the console handlers for the Student roster.
//
// Each exported function is a factory: it receives its dependencies once,
// at startup, and returns the console.HandlerFunc the router calls on
// every matching menu choice.
package student

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/course-registration/internal/console"
	"github.com/aanand-mishra/course-registration/internal/roster"
	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles "Register a Student for a Course."
// Prompts for the three fields and appends a validated student.
//
// Success output:
//
//	You have registered Jane Doe for CS101.
//
// A rejected field is reported per field and the roster stays unchanged.
// ─────────────────────────────────────────────────────────────────────────────
func New(r *roster.Roster) console.HandlerFunc {
	return func(w io.Writer, req *console.Request) {
		slog.Info("registering a student")

		// ── Step 1: Collect the raw values ────────────────────────────
		values := make([]string, 0, 3)
		for _, label := range []string{
			"Enter the student's first name: ",
			"Enter the student's last name: ",
			"Please enter the name of the course: ",
		} {
			v, err := req.Prompt(label)
			if err != nil {
				response.Error(w, response.MsgInvalidData, err)
				return
			}
			values = append(values, v)
		}

		// ── Step 2: Validate and append ───────────────────────────────
		student, err := r.Register(values[0], values[1], values[2])
		if err != nil {
			slog.Warn("student rejected", slog.String("error", err.Error()))
			if errors.Is(err, types.ErrValidation) {
				response.ValidationError(w, err)
			} else {
				response.Error(w, response.MsgInvalidData, err)
			}
			return
		}

		slog.Info("student registered", slog.Int("roster_size", r.Len()))

		fmt.Fprintln(w)
		fmt.Fprintf(w, "You have registered %s %s for %s.\n",
			student.FirstName(), student.LastName(), student.CourseName())
	}
}

// GetList handles "Show current data."
// Renders every student in insertion order between separator lines.
func GetList(r *roster.Roster) console.HandlerFunc {
	return func(w io.Writer, _ *console.Request) {
		slog.Info("listing students", slog.Int("roster_size", r.Len()))
		response.Students(w, r.List())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Save handles "Save data to a file."
// Writes the whole roster through s and, on success, shows what was saved
// as confirmation. A failure is reported and the in-memory roster is kept.
// ─────────────────────────────────────────────────────────────────────────────
func Save(s storage.Storage, r *roster.Roster) console.HandlerFunc {
	return func(w io.Writer, _ *console.Request) {
		slog.Info("saving students", slog.Int("roster_size", r.Len()))

		if err := r.Save(s); err != nil {
			slog.Error("error saving students", slog.String("error", err.Error()))
			response.Error(w, response.MsgFileWriteFailed, err)
			return
		}

		slog.Info("students saved")
		response.Students(w, r.List())
	}
}
