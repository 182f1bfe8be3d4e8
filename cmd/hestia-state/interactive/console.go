// Package interactive provides the interactive command-line console
// for the hestia-state daemon.
package interactive

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hestia-automation/hestia-go/pkg/discovery"
	"github.com/hestia-automation/hestia-go/pkg/state"
	"github.com/hestia-automation/hestia-go/pkg/version"
)

// Console handles interactive mode for hestia-state.
type Console struct {
	acc   *state.Accessor
	disp  *state.Dispatcher
	store *state.MemoryStore
	rl    *readline.Instance

	// queueBuffer is the capacity of watch queues.
	queueBuffer int

	// Active watches, keyed by the space-joined watched names.
	watches map[string]*watch
}

// watch is one active watch subscription.
type watch struct {
	names []string
	queue *state.Queue
	done  chan struct{}
}

// New creates a new interactive console. A queueBuffer of zero or less
// means the default watch queue capacity.
func New(acc *state.Accessor, disp *state.Dispatcher, store *state.MemoryStore, queueBuffer int) (*Console, error) {
	c := &Console{
		acc:         acc,
		disp:        disp,
		store:       store,
		queueBuffer: queueBuffer,
		watches:     make(map[string]*watch),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "state> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    c.completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c.rl = rl

	return c, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// completer builds the tab completion tree. State variable names are
// completed dynamically from the accessor.
func (c *Console) completer() readline.AutoCompleter {
	names := readline.PcItemDynamic(c.completeNames)
	return readline.NewPrefixCompleter(
		readline.PcItem("get", names),
		readline.PcItem("set", names),
		readline.PcItem("setattr", names),
		readline.PcItem("exists", names),
		readline.PcItem("watch", names),
		readline.PcItem("unwatch", names),
		readline.PcItem("complete", names),
		readline.PcItem("ls"),
		readline.PcItem("watches"),
		readline.PcItem("peers"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// completeNames returns completion candidates for the current word.
func (c *Console) completeNames(line string) []string {
	fields := strings.Fields(line)
	prefix := ""
	if len(fields) > 1 && !strings.HasSuffix(line, " ") {
		prefix = fields[len(fields)-1]
	}

	completions := c.acc.Completions(prefix).ToSlice()
	sort.Strings(completions)
	return completions
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	defer c.stopAllWatches()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "get", "g":
			c.cmdGet(args)

		case "set", "s":
			c.cmdSet(args)

		case "setattr":
			c.cmdSetAttr(args)

		case "exists":
			c.cmdExists(args)

		case "ls", "list":
			c.cmdList(args)

		case "complete":
			c.cmdComplete(args)

		case "watch", "w":
			c.cmdWatch(args)

		case "unwatch":
			c.cmdUnwatch(args)

		case "watches":
			c.cmdWatches()

		case "peers":
			c.cmdPeers(ctx)

		case "status":
			c.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Hestia State Commands:
  State Variables:
    get <name>                - Read a state variable or attribute
    set <name> <value>        - Write a state variable
    setattr <name> <key> <value> - Set one attribute of an entity
    exists <name>             - Check whether a name resolves
    ls [prefix]               - List entity IDs
    complete <prefix>         - Show name completions for a prefix

  Watching:
    watch <name...>           - Watch state variables for changes
    unwatch <name...>         - Stop watching
    watches                   - List active watches

  General:
    peers                     - Browse for other daemons via mDNS
    status                    - Show daemon status
    help                      - Show this help
    quit                      - Exit

  Name Format:
    domain.entity             - e.g., light.kitchen
    domain.entity.attribute   - e.g., light.kitchen.brightness`)
}

// cmdGet handles the get command.
func (c *Console) cmdGet(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: get <name>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: get light.kitchen")
		return
	}

	value, ok := c.acc.Get(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "%s is not set\n", args[0])
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "%s = %v\n", args[0], value)
}

// cmdSet handles the set command.
func (c *Console) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: set <name> <value>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: set light.kitchen on")
		return
	}

	name := args[0]
	if !state.ValidEntityID(name) {
		fmt.Fprintf(c.rl.Stdout(), "Invalid name: %s (expected domain.entity)\n", name)
		return
	}

	value := parseValue(strings.Join(args[1:], " "))
	c.acc.Set(name, value, nil)
	fmt.Fprintln(c.rl.Stdout(), "OK")
}

// cmdSetAttr handles the setattr command.
func (c *Console) cmdSetAttr(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: setattr <name> <key> <value>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: setattr light.kitchen brightness 128")
		return
	}

	name := args[0]
	if !state.ValidEntityID(name) {
		fmt.Fprintf(c.rl.Stdout(), "Invalid name: %s (expected domain.entity)\n", name)
		return
	}

	// Keep the current value, merge in the one attribute.
	current, _ := c.acc.Get(name)
	attr := parseValue(strings.Join(args[2:], " "))
	c.acc.Set(name, current, map[string]any{args[1]: attr})
	fmt.Fprintln(c.rl.Stdout(), "OK")
}

// cmdExists handles the exists command.
func (c *Console) cmdExists(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: exists <name>")
		return
	}

	if c.acc.Exists(args[0]) {
		fmt.Fprintf(c.rl.Stdout(), "%s exists\n", args[0])
	} else {
		fmt.Fprintf(c.rl.Stdout(), "%s does not exist\n", args[0])
	}
}

// cmdList handles the ls command.
func (c *Console) cmdList(args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	ids := c.store.EntityIDs()
	sort.Strings(ids)

	count := 0
	for _, id := range ids {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(id), strings.ToLower(prefix)) {
			continue
		}
		value, _ := c.acc.Get(id)
		fmt.Fprintf(c.rl.Stdout(), "  %s = %v\n", id, value)
		count++
	}

	if count == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No entities")
	}
}

// cmdComplete handles the complete command.
func (c *Console) cmdComplete(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: complete <prefix>")
		return
	}

	completions := c.acc.Completions(args[0]).ToSlice()
	if len(completions) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No completions")
		return
	}

	sort.Strings(completions)
	for _, name := range completions {
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", name)
	}
}

// cmdWatch handles the watch command.
func (c *Console) cmdWatch(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: watch <name...>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: watch light.kitchen sensor.motion")
		return
	}

	key := strings.Join(args, " ")
	if _, exists := c.watches[key]; exists {
		fmt.Fprintf(c.rl.Stdout(), "Already watching: %s\n", key)
		return
	}

	w := &watch{
		names: args,
		queue: state.NewQueue(c.queueBuffer),
		done:  make(chan struct{}),
	}
	c.disp.Subscribe(w.names, w.queue)
	c.watches[key] = w

	go c.runWatch(w)
	fmt.Fprintf(c.rl.Stdout(), "Watching: %s\n", key)
}

// runWatch prints messages from one watch subscription.
func (c *Console) runWatch(w *watch) {
	for {
		select {
		case <-w.done:
			return
		case msg := <-w.queue.C():
			keys := make([]string, 0, len(msg.Values))
			for k := range msg.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			var b strings.Builder
			for i, k := range keys {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s=%v", k, msg.Values[k])
			}
			fmt.Fprintf(c.rl.Stdout(), "[%s] %s\n", msg.Tag, b.String())
		}
	}
}

// cmdUnwatch handles the unwatch command.
func (c *Console) cmdUnwatch(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: unwatch <name...>")
		fmt.Fprintln(c.rl.Stdout(), "  Use 'watches' to list active watches")
		return
	}

	key := strings.Join(args, " ")
	w, exists := c.watches[key]
	if !exists {
		fmt.Fprintf(c.rl.Stdout(), "Not watching: %s\n", key)
		return
	}

	c.disp.Unsubscribe(w.names, w.queue)
	close(w.done)
	delete(c.watches, key)
	fmt.Fprintf(c.rl.Stdout(), "Stopped watching: %s\n", key)
}

// cmdWatches handles the watches command.
func (c *Console) cmdWatches() {
	if len(c.watches) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No active watches")
		return
	}

	keys := make([]string, 0, len(c.watches))
	for k := range c.watches {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(c.rl.Stdout(), "\nActive Watches (%d):\n", len(keys))
	for _, k := range keys {
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", k)
	}
}

// cmdPeers handles the peers command. It browses for other daemons on
// the network for a few seconds and lists what it found.
func (c *Console) cmdPeers(ctx context.Context) {
	browser, err := discovery.NewMDNSBrowser(discovery.DefaultBrowserConfig())
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Browse failed: %v\n", err)
		return
	}
	defer browser.Stop()

	browseCtx, cancel := context.WithTimeout(ctx, discovery.BrowseTimeout)
	defer cancel()

	results, err := browser.Browse(browseCtx)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Browse failed: %v\n", err)
		return
	}

	fmt.Fprintf(c.rl.Stdout(), "Browsing for %s...\n", discovery.BrowseTimeout)
	found := 0
	for svc := range results {
		found++
		fmt.Fprintf(c.rl.Stdout(), "  %s\n", formatPeer(svc))
	}

	if found == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No peers found")
	}
}

// formatPeer renders one discovered daemon, flagging peers whose major
// version differs from ours.
func formatPeer(svc *discovery.Service) string {
	line := fmt.Sprintf("%s (v%s, %d entities) at %s:%d %v",
		svc.InstanceName, svc.Version, svc.EntityCount, svc.Host, svc.Port, svc.Addresses)

	theirs, err := version.Parse(svc.Version)
	if err != nil {
		return line + " [unknown version]"
	}
	ours, _ := version.Parse(version.Current)
	if !ours.Compatible(theirs) {
		return line + " [incompatible]"
	}
	return line
}

// cmdStatus handles the status command.
func (c *Console) cmdStatus() {
	fmt.Fprintln(c.rl.Stdout(), "\nDaemon Status")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Instance ID:   %s\n", c.disp.InstanceID())
	fmt.Fprintf(c.rl.Stdout(), "  Entities:      %d\n", len(c.store.EntityIDs()))
	fmt.Fprintf(c.rl.Stdout(), "  Subscriptions: %d\n", c.disp.SubscriptionCount())
	fmt.Fprintf(c.rl.Stdout(), "  Watches:       %d\n", len(c.watches))
	fmt.Fprintln(c.rl.Stdout())
}

// stopAllWatches unsubscribes and stops every active watch.
func (c *Console) stopAllWatches() {
	for key, w := range c.watches {
		c.disp.Unsubscribe(w.names, w.queue)
		close(w.done)
		delete(c.watches, key)
	}
}

// parseValue parses a command argument into a typed value.
// Tries int, then float, then bool, falling back to string.
func parseValue(s string) any {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	// Treat as string (strip quotes if present)
	return strings.Trim(s, "\"'")
}
