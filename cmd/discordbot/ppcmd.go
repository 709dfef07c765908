/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/pingpong-tdbot/bracket"
	"github.com/mikeb26/pingpong-tdbot/internal"
	"github.com/mikeb26/pingpong-tdbot/roster"
	"github.com/mikeb26/pingpong-tdbot/store"
)

type PpSubCommand string

const (
	PpHelpCmd      PpSubCommand = "help"
	PpRosterCmd    PpSubCommand = "roster"
	PpDrawCmd      PpSubCommand = "draw"
	PpBracketCmd   PpSubCommand = "bracket"
	PpWinCmd       PpSubCommand = "win"
	PpStartCmd     PpSubCommand = "start"
	PpThirdCmd     PpSubCommand = "third"
	PpUndoCmd      PpSubCommand = "undo"
	PpStandingsCmd PpSubCommand = "standings"
	PpPlayerCmd    PpSubCommand = "player"
)

var ppSubCmdHdlrs = map[PpSubCommand]CmdHandler{
	PpHelpCmd:      ppHelpCmdHandler,
	PpRosterCmd:    ppRosterCmdHandler,
	PpDrawCmd:      ppDrawCmdHandler,
	PpBracketCmd:   ppBracketCmdHandler,
	PpWinCmd:       ppWinCmdHandler,
	PpStartCmd:     ppStartCmdHandler,
	PpThirdCmd:     ppThirdCmdHandler,
	PpUndoCmd:      ppUndoCmdHandler,
	PpStandingsCmd: ppStandingsCmdHandler,
	PpPlayerCmd:    ppPlayerCmdHandler,
}

var (
	// tourneyStore holds every tournament the bot manages; storeMu
	// serializes load, mutate and save.
	tourneyStore *store.Store
	storeMu      sync.Mutex

	// newShuffler seeds draws; tests replace it for reproducible brackets
	newShuffler = func() bracket.Shuffler { return bracket.NewRandomShuffler(0) }
)

func ppCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := ppHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := ppSubCmdHdlrs[PpSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

// subOptions collects the options of the invoked subcommand.
type subOptions struct {
	tournament string
	broadcast  bool
	strs       map[string]string
	ints       map[string]int64
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	so := subOptions{
		tournament: internal.DefaultTournament,
		strs:       make(map[string]string),
		ints:       make(map[string]int64),
	}
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return so
	}
	for _, opt := range data.Options[0].Options {
		switch {
		case opt.Name == "broadcast":
			so.broadcast = opt.BoolValue()
		case opt.Name == "tournament":
			if v := internal.NormalizeName(opt.StringValue()); v != "" {
				so.tournament = v
			}
		case opt.Type == discordgo.ApplicationCommandOptionInteger:
			so.ints[opt.Name] = opt.IntValue()
		case opt.Type == discordgo.ApplicationCommandOptionString:
			so.strs[opt.Name] = opt.StringValue()
		}
	}
	return so
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

func codeBlock(s string) string {
	return fmt.Sprintf("```\n%s```", truncateContent(s))
}

// respond fills in resp from a rendered body and the broadcast option.
func respond(resp *discordgo.InteractionResponse, so subOptions,
	content string) *discordgo.InteractionResponse {

	resp.Data.Content = content
	if so.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

// withTournament loads the tournament named by the interaction, hands it
// to fn and saves it when fn reports a change. Errors from fn are returned
// to the user without saving.
func withTournament(so subOptions, logTag string,
	fn func(t *bracket.Tournament) (string, bool, error)) string {

	storeMu.Lock()
	defer storeMu.Unlock()

	t, err := tourneyStore.LoadOrNew(so.tournament)
	if err != nil {
		log.Printf("discordbot.%v: %v", logTag, err)
		return fmt.Sprintf("Error loading tournament %q: %v", so.tournament, err)
	}

	content, changed, err := fn(t)
	if err != nil {
		if errors.Is(err, bracket.ErrNotReady) {
			return fmt.Sprintf("Not ready yet: %v", err)
		}
		return fmt.Sprintf("Unable to %v: %v", logTag, err)
	}
	if changed {
		if err := tourneyStore.Save(t); err != nil {
			log.Printf("discordbot.%v: %v", logTag, err)
			return fmt.Sprintf("Error saving tournament %q: %v", t.Name, err)
		}
	}

	return content
}

//go:embed help.md
var helpText string

func ppHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func ppRosterCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	names, err := roster.Parse(so.strs["players"])
	if err != nil {
		return respond(resp, so, "Please provide player names separated by commas.")
	}

	content := withTournament(so, "roster",
		func(t *bracket.Tournament) (string, bool, error) {
			if err := t.SetRoster(names); err != nil {
				return "", false, err
			}
			return fmt.Sprintf("%d players entered for **%v**: %v\nRun /pp draw to draw Round 1",
				len(names), t.Name, strings.Join(names, ", ")), true, nil
		})
	return respond(resp, so, truncateContent(content))
}

func ppDrawCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	content := withTournament(so, "draw",
		func(t *bracket.Tournament) (string, bool, error) {
			if err := t.Draw(newShuffler()); err != nil {
				return "", false, err
			}
			return codeBlock(bracket.BuildBracketOutput(t)), true, nil
		})
	return respond(resp, so, content)
}

func ppBracketCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	content := withTournament(so, "bracket",
		func(t *bracket.Tournament) (string, bool, error) {
			return codeBlock(bracket.BuildBracketOutput(t)), false, nil
		})
	return respond(resp, so, content)
}

func ppWinCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	stage, err := bracket.ParseStage(so.strs["stage"])
	if err != nil {
		return respond(resp, so, fmt.Sprintf("Please provide a valid stage: %v", err))
	}
	match := so.ints["match"]
	player := internal.NormalizeName(so.strs["player"])
	if player == "" || (stage != bracket.StageThirdPlace && match <= 0) {
		return respond(resp, so, "Please provide a match number and a player.")
	}

	content := withTournament(so, "record winner",
		func(t *bracket.Tournament) (string, bool, error) {
			if stage == bracket.StageThirdPlace {
				err = t.RecordThirdPlaceWinner(player)
			} else {
				err = t.RecordWinner(stage, int(match)-1, player)
			}
			if err != nil {
				return "", false, err
			}
			return codeBlock(bracket.BuildBracketOutput(t)), true, nil
		})
	return respond(resp, so, content)
}

var stageStarters = map[bracket.Stage]func(t *bracket.Tournament) error{
	bracket.StageRound2:       (*bracket.Tournament).StartRound2,
	bracket.StageQuarterfinal: (*bracket.Tournament).StartQuarterfinals,
	bracket.StageSemifinal:    (*bracket.Tournament).StartSemifinals,
	bracket.StageFinal:        (*bracket.Tournament).StartFinals,
}

func ppStartCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	stage, err := bracket.ParseStage(so.strs["stage"])
	start, ok := stageStarters[stage]
	if err != nil || !ok {
		return respond(resp, so, "Please choose round2, quarterfinals, semifinals or finals.")
	}

	content := withTournament(so, "start "+stage.String(),
		func(t *bracket.Tournament) (string, bool, error) {
			if err := start(t); err != nil {
				return "", false, err
			}
			return codeBlock(bracket.BuildBracketOutput(t)), true, nil
		})
	return respond(resp, so, content)
}

func ppThirdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	player := internal.NormalizeName(so.strs["player"])
	if player == "" {
		return respond(resp, so, "Please provide the winning player.")
	}

	content := withTournament(so, "record 3rd place",
		func(t *bracket.Tournament) (string, bool, error) {
			if err := t.RecordThirdPlaceWinner(player); err != nil {
				return "", false, err
			}
			out := bracket.BuildBracketOutput(t)
			if t.IsComplete() {
				out += "\n" + bracket.BuildStandingsOutput(t)
			}
			return codeBlock(out), true, nil
		})
	return respond(resp, so, content)
}

func ppUndoCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	content := withTournament(so, "undo",
		func(t *bracket.Tournament) (string, bool, error) {
			if err := t.Undo(); err != nil {
				return "", false, err
			}
			return codeBlock(bracket.BuildBracketOutput(t)), true, nil
		})
	return respond(resp, so, content)
}

func ppStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	sortStr, hasSort := so.strs["sort"]
	mode, err := bracket.ParseSortMode(sortStr)
	if err != nil {
		return respond(resp, so, err.Error())
	}

	content := withTournament(so, "standings",
		func(t *bracket.Tournament) (string, bool, error) {
			changed := hasSort && t.SortMode() != mode
			if hasSort {
				t.SetSortMode(mode)
			}
			return codeBlock(bracket.BuildStandingsOutput(t)), changed, nil
		})
	return respond(resp, so, content)
}

func ppPlayerCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	so := parseSubOptions(inter)
	name := internal.NormalizeName(so.strs["name"])
	if name == "" {
		return respond(resp, so, "Please provide a player name.")
	}

	content := withTournament(so, "player",
		func(t *bracket.Tournament) (string, bool, error) {
			out, err := bracket.BuildPlayerOutput(t, name)
			if err != nil {
				return "", false, err
			}
			return codeBlock(out), false, nil
		})
	return respond(resp, so, content)
}
