package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/peterkuimelis/tcgx-triggers/internal/host"
)

// Client connects to a session server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// Connect dials a server and runs the REPL on in/out.
func Connect(ctx context.Context, addr string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Fprintln(out, "Connected. Type a move (e.g. 'summon 3', 'attack 4 9', 'standby'), 'board' or 'quit'.")
	return NewClient(conn, in, out).RunREPL(ctx)
}

// NewClient creates a REPL client over conn.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// RunREPL reads server messages and handles them interactively. After each
// result the user is asked for the next command.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for ctx.Err() == nil {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgCollection:
			c.renderCollection(msg.Collection)

		case MsgChooseCards:
			c.renderCardChoice(msg.Prompt, msg.Candidates, msg.Min, msg.Max)
			indices, err := c.readCardIndices(len(msg.Candidates), msg.Min, msg.Max)
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: MsgCards, Indices: indices}); err != nil {
				return fmt.Errorf("send cards: %w", err)
			}

		case MsgPromptYesNo:
			fmt.Fprintf(c.out, "\n%s (y/n): ", msg.Prompt)
			answer, err := c.readYesNo()
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: MsgYesNo, Answer: answer}); err != nil {
				return fmt.Errorf("send yes_no: %w", err)
			}

		case MsgResult:
			if msg.Error != "" {
				fmt.Fprintf(c.out, "error: %s\n", msg.Error)
			}
			c.renderState(msg.State)
			if msg.Over {
				fmt.Fprintln(c.out)
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, "          DUEL OVER")
				fmt.Fprintln(c.out, "═══════════════════════════════════")
				fmt.Fprintln(c.out, msg.Result)
				return nil
			}
			cmd, quit, err := c.readCommand()
			if err != nil || quit {
				return err
			}
			if err := enc.Encode(cmd); err != nil {
				return fmt.Errorf("send command: %w", err)
			}
		}
	}
	return ctx.Err()
}

// readCommand reads lines until one parses as a command.
func (c *Client) readCommand() (ClientMessage, bool, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			return ClientMessage{}, true, nil
		}
		switch line {
		case "":
			continue
		case "quit", "exit":
			return ClientMessage{}, true, nil
		case "board":
			return ClientMessage{Type: MsgBoard}, false, nil
		}
		move, perr := host.ParseMove(line)
		if perr != nil {
			fmt.Fprintln(c.out, perr)
			continue
		}
		return ClientMessage{Type: MsgEmit, Move: &move}, false, nil
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 16 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderCollection(cv *CollectionView) {
	if cv == nil {
		return
	}
	fmt.Fprintf(c.out, "\n%s triggers (%s)\n", cv.Event, cv.OrderRule)
	for i, e := range cv.Entries {
		outcome := ""
		if i < len(cv.Outcomes) {
			outcome = " -> " + cv.Outcomes[i]
		}
		fmt.Fprintf(c.out, "  %d) %s%s\n", i+1, e, outcome)
	}
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT (LP: %d)  Hand: %d  Deck: %d  GY: %d\n",
		opp.LP, opp.HandCount, opp.DeckCount, len(opp.Graveyard))
	if opp.FieldSpell != nil {
		fmt.Fprintf(w, "║  Field:   %s\n", formatSpellTrapZone(*opp.FieldSpell))
	}
	fmt.Fprintf(w, "║  S/T:     ")
	for _, zv := range opp.SpellTrap {
		fmt.Fprintf(w, "%s ", formatSpellTrapZone(zv))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "║  Monster: ")
	for _, zv := range opp.Monsters {
		fmt.Fprintf(w, "%s ", formatMonsterZone(zv))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Monster: ")
	for _, zv := range you.Monsters {
		fmt.Fprintf(w, "%s ", formatMonsterZone(zv))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "║  S/T:     ")
	for _, zv := range you.SpellTrap {
		fmt.Fprintf(w, "%s ", formatSpellTrapZone(zv))
	}
	fmt.Fprintln(w)
	if you.FieldSpell != nil {
		fmt.Fprintf(w, "║  Field:   %s\n", formatSpellTrapZone(*you.FieldSpell))
	}
	fmt.Fprintf(w, "║  YOU (LP: %d)  Hand: %d  Deck: %d  GY: %d\n",
		you.LP, you.HandCount, you.DeckCount, len(you.Graveyard))
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for _, zv := range you.Hand {
			fmt.Fprintf(w, "#%d %s  ", zv.ID, zv.Name)
		}
		fmt.Fprintln(w)
	}
}

func formatMonsterZone(zv ZoneView) string {
	if zv.Empty {
		return "[ ]"
	}
	if zv.FaceDown {
		if zv.Name != "" {
			return fmt.Sprintf("[#%d SET:%s]", zv.ID, zv.Name)
		}
		return "[SET]"
	}
	if zv.Position == "ATK" {
		return fmt.Sprintf("[#%d %s ATK/%d]", zv.ID, zv.Name, zv.ATK)
	}
	return fmt.Sprintf("[#%d %s DEF/%d]", zv.ID, zv.Name, zv.DEF)
}

func formatSpellTrapZone(zv ZoneView) string {
	if zv.Empty {
		return "[ ]"
	}
	if zv.FaceDown {
		if zv.Name != "" {
			return fmt.Sprintf("[#%d SET:%s]", zv.ID, zv.Name)
		}
		return "[SET]"
	}
	return fmt.Sprintf("[#%d %s]", zv.ID, zv.Name)
}

func (c *Client) renderCardChoice(prompt string, candidates []CardView, min, max int) {
	fmt.Fprintf(c.out, "\n%s (select %d", prompt, min)
	if max != min {
		fmt.Fprintf(c.out, "-%d", max)
	}
	fmt.Fprintln(c.out, ")")
	for _, cv := range candidates {
		if cv.ATK > 0 || cv.DEF > 0 {
			fmt.Fprintf(c.out, "  %d) %s (ATK %d / DEF %d)\n", cv.Index+1, cv.Name, cv.ATK, cv.DEF)
		} else {
			fmt.Fprintf(c.out, "  %d) %s\n", cv.Index+1, cv.Name)
		}
	}
}

func (c *Client) readCardIndices(count, min, max int) ([]int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("read selection: %w", err)
		}
		parts := strings.Fields(line)

		if len(parts) < min || len(parts) > max {
			fmt.Fprintf(c.out, "Enter %d-%d numbers separated by spaces\n", min, max)
			continue
		}

		var indices []int
		valid := true
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 || n > count {
				fmt.Fprintf(c.out, "Each number must be between 1 and %d\n", count)
				valid = false
				break
			}
			indices = append(indices, n-1) // convert to 0-indexed
		}
		if valid {
			return indices, nil
		}
	}
}

func (c *Client) readYesNo() (bool, error) {
	for {
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("read answer: %w", err)
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(c.out, "Enter y or n: ")
		}
	}
}
