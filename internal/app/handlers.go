package app

import (
	"fmt"

	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/config"
)

// HandleMessage feeds one chat message to the bot. Chat commands are
// answered first. Otherwise a phrase match bumps the user's counter and
// renders the reply, and a miss reports the current count with no reply.
func (a *App) HandleMessage(user, text string) (socket.MessageResult, error) {
	a.mu.RLock()
	m, bot := a.matcher, a.cfg.Bot
	a.mu.RUnlock()

	if name, ok := parseCommand(bot.CommandPrefix, text); ok {
		if res, handled, err := a.runCommand(user, name); handled {
			return res, err
		}
	}

	phrase, ok := m.Find(text)
	if !ok {
		n, err := a.Store.Count(user)
		if err != nil {
			return socket.MessageResult{}, fmt.Errorf("count %s: %w", user, err)
		}
		return socket.MessageResult{Count: n}, nil
	}

	n, err := a.Store.Increment(user)
	if err != nil {
		return socket.MessageResult{}, fmt.Errorf("increment %s: %w", user, err)
	}
	a.log.Info().Str("user", user).Str("phrase", phrase.String()).Uint64("count", n).Msg("Late phrase matched")

	return socket.MessageResult{
		Matched: true,
		Phrase:  phrase.String(),
		Count:   n,
		Reply:   config.RenderReply(bot.Reply, user, n),
	}, nil
}

// Count reports how often user has been late, with the rendered count reply.
func (a *App) Count(user string) (socket.CountResult, error) {
	n, err := a.Store.Count(user)
	if err != nil {
		return socket.CountResult{}, fmt.Errorf("count %s: %w", user, err)
	}
	a.mu.RLock()
	tmpl := a.cfg.Bot.CountReply
	a.mu.RUnlock()
	return socket.CountResult{User: user, Count: n, Reply: config.RenderReply(tmpl, user, n)}, nil
}

// Counts lists every counter, highest first.
func (a *App) Counts() (socket.CountsResult, error) {
	counts, err := a.Store.Counts()
	if err != nil {
		return socket.CountsResult{}, fmt.Errorf("list counts: %w", err)
	}
	var total uint64
	for _, c := range counts {
		total += c.Count
	}
	return socket.CountsResult{Counts: counts, Total: total}, nil
}

// Reset clears user's counter.
func (a *App) Reset(user string) error {
	if err := a.Store.Reset(user); err != nil {
		return fmt.Errorf("reset %s: %w", user, err)
	}
	a.log.Info().Str("user", user).Msg("Counter reset")
	return nil
}

// Reload re-reads the config file and swaps in the new matcher.
func (a *App) Reload() (socket.ReloadResult, error) {
	cfg, err := a.load()
	if err != nil {
		return socket.ReloadResult{}, err
	}
	return socket.ReloadResult{PhraseCount: len(cfg.Match.Phrases), Scorer: cfg.Match.Scorer}, nil
}

// MatcherInfo reports the loaded phrase count and scorer name.
func (a *App) MatcherInfo() (int, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.matcher.Phrases()), a.cfg.Match.Scorer
}
