/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mikeb26/pingpong-tdbot/internal"
	"github.com/mikeb26/pingpong-tdbot/store"
)

var (
	cfg       *internal.Config
	botPubKey ed25519.PublicKey
	client    *discordgo.Session
)

type TopLevelCommand string

const (
	PpCmd TopLevelCommand = "pp"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	PpCmd: ppCmdHandler,
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/DiscordBot/Interaction", interactionHandler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func cmdHash(cmd *discordgo.ApplicationCommand) string {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:])
}

func tournamentOpt() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "tournament",
		Description: "Tournament name (default is \"default\")",
		Required:    false,
	}
}

func broadcastOpt() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func stringChoices(vals ...string) []*discordgo.ApplicationCommandOptionChoice {
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, v := range vals {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: v,
			Value: v})
	}
	return out
}

func subCommand(name PpSubCommand, desc string,
	opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {

	if name != PpHelpCmd {
		opts = append(opts, tournamentOpt(), broadcastOpt())
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        string(name),
		Description: desc,
		Options:     opts,
	}
}

func ppCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(PpCmd),
		Description: "Ping pong tournament commands; try /pp help to start",
		Options: []*discordgo.ApplicationCommandOption{
			subCommand(PpHelpCmd, "Show usage for pp"),
			subCommand(PpRosterCmd, "Enter the players",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "players",
					Description: "Player names separated by commas",
					Required:    true,
				}),
			subCommand(PpDrawCmd, "Draw Round 1"),
			subCommand(PpBracketCmd, "Show the bracket"),
			subCommand(PpWinCmd, "Record a match winner",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "stage",
					Description: "Stage of the match",
					Required:    true,
					Choices:     stringChoices("r1", "r2", "qf", "sf", "final", "3rd"),
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "match",
					Description: "Match number within the stage",
					Required:    true,
				},
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player",
					Description: "Winning player",
					Required:    true,
				}),
			subCommand(PpStartCmd, "Start the next stage",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "stage",
					Description: "Stage to start",
					Required:    true,
					Choices: stringChoices("round2", "quarterfinals",
						"semifinals", "finals"),
				}),
			subCommand(PpThirdCmd, "Record the 3rd place match winner",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player",
					Description: "Winning player",
					Required:    true,
				}),
			subCommand(PpUndoCmd, "Undo the last change"),
			subCommand(PpStandingsCmd, "Show player statistics",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "sort",
					Description: "Sort order (default is progress)",
					Required:    false,
					Choices:     stringChoices("progress", "wins", "name"),
				}),
			subCommand(PpPlayerCmd, "Show a player's record",
				&discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Player name",
					Required:    true,
				}),
		},
	}
}

func registerSlashCommands() {
	ppCmd := ppCommand()
	log.Printf("discordbot.reg: command hash %v", cmdHash(ppCmd))

	if cfg.DiscordCmdID == "" {
		cmd, err := client.ApplicationCommandCreate(cfg.DiscordAppID, "", ppCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", ppCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set DISCORD_CMD_ID",
			cmd.Name, cmd.ID)
		return
	}

	cmd, err := client.ApplicationCommandEdit(cfg.DiscordAppID, "",
		cfg.DiscordCmdID, ppCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", ppCmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = internal.LoadConfig()
	if err != nil {
		return err
	}

	pubKeyBytes, err := hex.DecodeString(cfg.DiscordPublicKey)
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		return fmt.Errorf("DISCORD_PUBLIC_KEY must be %d hex encoded bytes",
			ed25519.PublicKeySize)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	client, err = discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to initialize discord client: %w", err)
	}

	tourneyStore, err = store.Open(ctx, cfg)
	return err
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	ctx := context.Background()

	if err := setup(ctx); err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname,
		cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, newRouter()); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
