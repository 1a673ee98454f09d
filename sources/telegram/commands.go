package telegram

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"pgbot/sources/features"
	"pgbot/sources/framework/dispatch"
	"pgbot/sources/localization"
	"pgbot/sources/platform"
	"pgbot/sources/repository"
	"pgbot/sources/texting"

	"github.com/shopspring/decimal"
)

const emotionGaugeWidth = 10

// maxClockOffset bounds the UTC offset accepted by clock, in hours.
var maxClockOffset = decimal.NewFromInt(14)

type emotionStore interface {
	All(ctx context.Context) ([]repository.Emotion, error)
	Update(ctx context.Context, name string, delta int64) (int64, error)
}

type blacklistEditor interface {
	Add(ctx context.Context, command string) (bool, error)
	Remove(ctx context.Context, command string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// Builtins are the commands every deployment of the bot answers.
type Builtins struct {
	emotions     emotionStore
	blacklist    blacklistEditor
	localization *localization.LocalizationManager
	config       *BuiltinsConfig
	now          func() time.Time
}

func NewBuiltins(
	config *BuiltinsConfig,
	emotions *repository.EmotionsRepository,
	blacklist *repository.BlacklistRepository,
	localization *localization.LocalizationManager,
) *Builtins {
	return &Builtins{
		emotions:     emotions,
		blacklist:    blacklist,
		localization: localization,
		config:       config,
		now:          time.Now,
	}
}

func (x *Builtins) Routes() []dispatch.Route {
	return []dispatch.Route{
		{Name: "help", Usage: "help [command]", Help: "Lists the commands or explains one of them", Handler: x.help},
		{Name: "say", Usage: "say <text...>", Help: "Repeats the text back", Feature: features.FeatureFunCommands, Handler: x.say},
		{Name: "ping", Usage: "ping", Help: "Checks that the bot is alive", Handler: x.ping},
		{Name: "version", Usage: "version", Help: "Shows the running build", Handler: x.version},
		{Name: "clock", Usage: "clock [offset] [seconds=yes]", Help: "Shows the time at a UTC offset in hours", Handler: x.clock},
		{Name: "code", Usage: "code <codeblock> [lang=<language>]", Help: "Reposts a code block, optionally with another highlighting", Feature: features.FeatureFunCommands, Handler: x.code},
		{Name: "parse", Usage: "parse <anything...>", Help: "Shows how the command line was understood", Feature: features.FeatureParseCommand, Handler: x.parse},
		{Name: "emotions", Usage: "emotions", Help: "Shows how the bot feels", Handler: x.mood},
		{Name: "emotions", Group: []string{"adjust"}, Usage: "emotions adjust <emotion> <delta>", Help: "Shifts an emotion counter", Admin: true, Handler: x.adjust},
		{Name: "heap", Usage: "heap", Help: "Shows the memory used by the bot", Admin: true, Handler: x.heap},
		{Name: "blacklist", Group: []string{"add"}, Usage: "blacklist add <command>", Help: "Blocks a command", Admin: true, Handler: x.blacklistAdd},
		{Name: "blacklist", Group: []string{"remove"}, Usage: "blacklist remove <command>", Help: "Unblocks a command", Admin: true, Handler: x.blacklistRemove},
		{Name: "blacklist", Group: []string{"list"}, Usage: "blacklist list", Help: "Lists blocked commands", Admin: true, Handler: x.blacklistList},
	}
}

func (x *Builtins) help(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(0, 1); err != nil {
		return err
	}
	if err := inv.Args.ExpectKeywords(); err != nil {
		return err
	}

	loc := x.localization.Localizer(inv.Caller.Language)
	prefix := inv.Registry.Prefix()

	routes := inv.Registry.Routes()
	if inv.Args.Len() == 1 {
		name, err := inv.Args.Word(0)
		if err != nil {
			return err
		}
		routes = inv.Registry.Lookup(name)
		if len(routes) == 0 {
			return inv.Registry.UnknownCommand(name)
		}
	}

	lines := make([]string, 0, len(routes))
	for _, route := range routes {
		if route.Admin && !inv.Caller.Admin && inv.Args.Len() == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("`%s%s` %s", prefix, route.Usage, route.Help))
	}

	return inv.Card(dispatch.Card{
		Title:       x.localization.Localize(loc, "HelpTitle"),
		Description: strings.Join(lines, "\n"),
		Footer:      x.localization.LocalizeTd(loc, "HelpFooter", map[string]interface{}{"Prefix": prefix}),
	})
}

func (x *Builtins) say(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(1, -1); err != nil {
		return err
	}
	if err := inv.Args.ExpectKeywords(); err != nil {
		return err
	}
	text, err := inv.Args.Rest(0)
	if err != nil {
		return err
	}
	return inv.Reply(text)
}

// bare rejects any argument, for commands that take none.
func bare(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(0, 0); err != nil {
		return err
	}
	return inv.Args.ExpectKeywords()
}

func (x *Builtins) ping(inv *dispatch.Invocation) error {
	if err := bare(inv); err != nil {
		return err
	}
	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, "PingReply", map[string]interface{}{
		"Uptime": texting.Durationify(platform.GetAppUptime()),
	}))
}

func (x *Builtins) version(inv *dispatch.Invocation) error {
	if err := bare(inv); err != nil {
		return err
	}
	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, "VersionReply", map[string]interface{}{
		"Version":   platform.GetAppVersion(),
		"BuildTime": platform.GetAppBuildTime(),
		"Uptime":    texting.Durationify(platform.GetAppUptime()),
	}))
}

func (x *Builtins) clock(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(0, 1); err != nil {
		return err
	}
	if err := inv.Args.ExpectKeywords("seconds"); err != nil {
		return err
	}

	offset := x.config.ClockOffset
	if inv.Args.Len() == 1 {
		var err error
		if offset, err = inv.Args.Decimal(0); err != nil {
			return err
		}
	}
	if offset.Abs().GreaterThan(maxClockOffset) {
		return dispatch.NewUserError("Invalid timezone!",
			fmt.Sprintf("The offset must lie within ±%s hours", maxClockOffset))
	}

	seconds, err := inv.Args.KwBool("seconds", false)
	if err != nil {
		return err
	}
	layout := "15:04"
	if seconds {
		layout = "15:04:05"
	}

	sign := "+"
	if offset.IsNegative() {
		sign = "-"
	}
	shift := offset.Mul(decimal.NewFromInt(3600)).IntPart()
	now := x.now().In(time.FixedZone("", int(shift)))

	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, "ClockReply", map[string]interface{}{
		"Time":   now.Format(layout),
		"Offset": sign + texting.Decimalify(offset.Abs()),
	}))
}

func (x *Builtins) code(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(1, 1); err != nil {
		return err
	}
	if err := inv.Args.ExpectKeywords("lang"); err != nil {
		return err
	}

	block, err := inv.Args.Code(0)
	if err != nil {
		return err
	}
	lang, err := inv.Args.KwText("lang", block.Lang)
	if err != nil {
		return err
	}
	return inv.Code(strings.ToLower(lang), block.Body)
}

// parse accepts anything, keywords included, and shows the structure back.
func (x *Builtins) parse(inv *dispatch.Invocation) error {
	return inv.Code("yaml", inv.Result.String())
}

func (x *Builtins) heap(inv *dispatch.Invocation) error {
	if err := bare(inv); err != nil {
		return err
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Card(dispatch.Card{
		Title: x.localization.Localize(loc, "HeapTitle"),
		Description: x.localization.LocalizeTd(loc, "HeapDescription", map[string]interface{}{
			"Heap":        texting.Bytesify(stats.HeapAlloc),
			"System":      texting.Bytesify(stats.Sys),
			"Collections": texting.Numberify(int64(stats.NumGC)),
			"Goroutines":  texting.Numberify(int64(runtime.NumGoroutine())),
		}),
	})
}

func (x *Builtins) mood(inv *dispatch.Invocation) error {
	if err := bare(inv); err != nil {
		return err
	}
	loc := x.localization.Localizer(inv.Caller.Language)

	emotions, err := x.emotions.All(inv.Context)
	if err != nil {
		return fmt.Errorf("read emotions: %w", err)
	}

	description := x.localization.Localize(loc, "EmotionsEmpty")
	if len(emotions) > 0 {
		lines := make([]string, 0, len(emotions))
		for _, emotion := range emotions {
			lines = append(lines, fmt.Sprintf("%s %s %s",
				emotion.Name,
				texting.Gaugify(emotion.Value, repository.EmotionFloor, repository.EmotionCeiling, emotionGaugeWidth),
				texting.Signify(emotion.Value),
			))
		}
		description = strings.Join(lines, "\n")
	}

	return inv.Card(dispatch.Card{
		Title:       x.localization.Localize(loc, "EmotionsTitle"),
		Description: description,
	})
}

func (x *Builtins) adjust(inv *dispatch.Invocation) error {
	if err := inv.Args.Expect(2, 2); err != nil {
		return err
	}
	if err := inv.Args.ExpectKeywords(); err != nil {
		return err
	}

	name, err := inv.Args.Word(0)
	if err != nil {
		return err
	}
	delta, err := inv.Args.Int(1)
	if err != nil {
		return err
	}
	name = strings.ToLower(name)

	value, err := x.emotions.Update(inv.Context, name, delta)
	if err != nil {
		return fmt.Errorf("adjust emotion %q: %w", name, err)
	}
	inv.Log.I("Emotion adjusted", "emotion", name, "delta", delta, "value", value)

	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, "EmotionAdjusted", map[string]interface{}{
		"Emotion": name,
		"Value":   texting.Signify(value),
	}))
}

// blacklistTarget reads the command path to block and checks that it exists.
func blacklistTarget(inv *dispatch.Invocation) (string, error) {
	if err := inv.Args.Expect(1, -1); err != nil {
		return "", err
	}
	if err := inv.Args.ExpectKeywords(); err != nil {
		return "", err
	}
	command, err := inv.Args.Rest(0)
	if err != nil {
		return "", err
	}
	command = strings.ToLower(command)

	name, _, _ := strings.Cut(command, " ")
	if len(inv.Registry.Lookup(name)) == 0 {
		return "", inv.Registry.UnknownCommand(name)
	}
	return command, nil
}

func (x *Builtins) blacklistAdd(inv *dispatch.Invocation) error {
	command, err := blacklistTarget(inv)
	if err != nil {
		return err
	}

	added, err := x.blacklist.Add(inv.Context, command)
	if err != nil {
		return err
	}

	id := "BlacklistAdded"
	if !added {
		id = "BlacklistAlreadyPresent"
	}
	inv.Log.I("Blacklist changed", "target", command, "added", added)

	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, id, map[string]interface{}{"Command": command}))
}

func (x *Builtins) blacklistRemove(inv *dispatch.Invocation) error {
	command, err := blacklistTarget(inv)
	if err != nil {
		return err
	}

	removed, err := x.blacklist.Remove(inv.Context, command)
	if err != nil {
		return err
	}

	id := "BlacklistRemoved"
	if !removed {
		id = "BlacklistNotPresent"
	}
	inv.Log.I("Blacklist changed", "target", command, "removed", removed)

	loc := x.localization.Localizer(inv.Caller.Language)
	return inv.Reply(x.localization.LocalizeTd(loc, id, map[string]interface{}{"Command": command}))
}

func (x *Builtins) blacklistList(inv *dispatch.Invocation) error {
	if err := bare(inv); err != nil {
		return err
	}

	loc := x.localization.Localizer(inv.Caller.Language)

	list, err := x.blacklist.List(inv.Context)
	if err != nil {
		return err
	}

	description := x.localization.Localize(loc, "BlacklistEmpty")
	if len(list) > 0 {
		lines := make([]string, 0, len(list))
		for _, command := range list {
			lines = append(lines, "`"+command+"`")
		}
		description = strings.Join(lines, "\n")
	}

	return inv.Card(dispatch.Card{
		Title:       x.localization.Localize(loc, "BlacklistTitle"),
		Description: description,
	})
}
