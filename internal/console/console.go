// Package console runs the interactive menu loop.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// A Router maps a menu choice ("1", "2", ...) to a HandlerFunc:
//
//	func(w io.Writer, r *Request)
//
// That signature has no room for the roster or the store, so handlers are
// built by factories that close over their dependencies:
//
//	router.HandleFunc("1", "Register a Student for a Course.", student.New(roster))
//	//                                                         ^^^^^^^^^^^^^^^^^^^
//	//                                 New(roster) is called ONCE at startup and
//	//                                 returns the func run on EVERY selection.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

// HandlerFunc serves one menu choice. It writes to w and reads any further
// input through r. Handlers report their own failures; nothing they do
// ends the loop.
type HandlerFunc func(w io.Writer, r *Request)

// Request gives a handler line-by-line access to the user's input.
type Request struct {
	in  *bufio.Reader
	out io.Writer
}

// Prompt writes label and returns the next input line without its line
// ending. Lines of any length are accepted; a final line without a
// trailing newline is still returned. It returns io.EOF once the input is
// exhausted.
func (r *Request) Prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	line, err := r.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type route struct {
	choice  string
	label   string
	handler HandlerFunc
	exit    bool
}

// menuRuleWidth is the length of the line closing the menu.
const menuRuleWidth = 41

// Router is the ordered menu: the choices are offered in the order they
// were registered.
type Router struct {
	title  string
	routes []route
}

// NewRouter returns an empty menu with the given title.
func NewRouter(title string) *Router {
	return &Router{title: title}
}

// HandleFunc registers h for choice. Registering a choice twice replaces
// the earlier entry in place.
func (rt *Router) HandleFunc(choice, label string, h HandlerFunc) {
	rt.add(route{choice: choice, label: label, handler: h})
}

// HandleExit registers the choice that ends the loop.
func (rt *Router) HandleExit(choice, label string) {
	rt.add(route{choice: choice, label: label, exit: true})
}

func (rt *Router) add(r route) {
	for i := range rt.routes {
		if rt.routes[i].choice == r.choice {
			rt.routes[i] = r
			return
		}
	}
	rt.routes = append(rt.routes, r)
}

func (rt *Router) lookup(choice string) (route, bool) {
	for _, r := range rt.routes {
		if r.choice == choice {
			return r, true
		}
	}
	return route{}, false
}

// Choices lists the accepted inputs in menu order.
func (rt *Router) Choices() []string {
	choices := make([]string, 0, len(rt.routes))
	for _, r := range rt.routes {
		choices = append(choices, r.choice)
	}
	return choices
}

// Menu renders the menu text:
//
//	---- Course Registration Program ----
//	  Select from the following menu:
//	    1. Register a Student for a Course.
//	    ...
//	-----------------------------------------
func (rt *Router) Menu() string {
	var b strings.Builder
	fmt.Fprintf(&b, "---- %s ----\n", rt.title)
	b.WriteString("  Select from the following menu:\n")
	for _, r := range rt.routes {
		fmt.Fprintf(&b, "    %s. %s\n", r.choice, r.label)
	}
	b.WriteString(strings.Repeat("-", menuRuleWidth))
	return b.String()
}

// Console reads choices from in and dispatches them through a Router.
type Console struct {
	router *Router
	req    *Request
	out    io.Writer
	log    *slog.Logger
}

// New wires a console to its input, output and logger.
func New(router *Router, in io.Reader, out io.Writer, log *slog.Logger) *Console {
	return &Console{
		router: router,
		req:    &Request{in: bufio.NewReader(in), out: out},
		out:    out,
		log:    log,
	}
}

// Run shows the menu until the exit choice is picked or the input ends.
// Choices outside the menu are rejected and the menu is shown again.
// Run returns early with ctx's error when ctx is cancelled between two
// choices, and with a read error if the input fails.
func (c *Console) Run(ctx context.Context) error {
	menu := c.router.Menu()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(c.out, "\n%s\n\n", menu)

		choice, err := c.req.Prompt("Enter your menu choice number: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			c.log.Info("input closed, leaving menu")
			break
		}
		if err != nil {
			return fmt.Errorf("read menu choice: %w", err)
		}
		choice = strings.TrimSpace(choice)

		r, ok := c.router.lookup(choice)
		if !ok {
			c.log.Debug("rejected menu choice", slog.String("choice", choice))
			response.Error(c.out, response.InvalidChoice(c.router.Choices()), nil)
			continue
		}
		if r.exit {
			break
		}

		c.log.Debug("menu choice", slog.String("choice", choice), slog.String("label", r.label))
		r.handler(c.out, c.req)
	}

	fmt.Fprintln(c.out, "Program Ended")
	return nil
}
