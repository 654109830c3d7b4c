package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/parsepush/internal/models"
	"github.com/dmitrijs2005/parsepush/internal/templates"
)

var (
	errNoTemplate      = errors.New("no such template")
	errTemplateName    = errors.New("template name is required")
	errUnknownChoice   = errors.New("unknown choice")
	errInvalidBadgeNum = errors.New("badge count must be a non-negative number")
)

func (a *App) Templates(_ context.Context) error {
	list := a.templates.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No templates. Use 'addtemplate' to create one.")
		return nil
	}
	for i, t := range list {
		fmt.Fprintf(a.out, "%d. %s (%s, %s)\n", i+1, t.Name, t.Target.Title(), t.Language.Title())
		if t.Title != "" {
			fmt.Fprintf(a.out, "   %s\n", t.Title)
		}
	}
	return nil
}

// choose accepts either the value or its 1-based number among options. An
// empty answer keeps def.
func choose[T ~string](a *App, prompt string, options []T, def T, title func(T) string) (T, error) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = fmt.Sprintf("%d=%s", i+1, title(o))
	}
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] (%s)", prompt, title(def), strings.Join(labels, ", ")), a.out)
	if err != nil {
		return def, err
	}
	if answer == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(answer, string(o)) || strings.EqualFold(answer, title(o)) {
			return o, nil
		}
	}
	return def, fmt.Errorf("%w: %q", errUnknownChoice, answer)
}

func yesNo(answer string, def bool) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (a *App) AddTemplate(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Template name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return errTemplateName
	}
	t := models.NewPushMessageTemplate(name)

	if t.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if t.BodyText, err = GetMultiline(a.reader, "Message", a.out); err != nil {
		return err
	}
	if t.Target, err = choose(a, "Target", models.PushTargets, t.Target, models.PushTarget.Title); err != nil {
		return err
	}
	if t.Language, err = choose(a, "Language", models.PushLanguages, t.Language, models.PushLanguage.Title); err != nil {
		return err
	}

	sound, err := GetSimpleText(a.reader, "Play sound? [Y/n]", a.out)
	if err != nil {
		return err
	}
	t.IsSoundEnabled = yesNo(sound, true)

	badge, err := GetSimpleText(a.reader, "Badge count (empty for no badge)", a.out)
	if err != nil {
		return err
	}
	if badge != "" {
		count, err := strconv.Atoi(badge)
		if err != nil || count < 0 {
			return fmt.Errorf("%w: %q", errInvalidBadgeNum, badge)
		}
		t.IsBadgeEnabled = true
		t.BadgeCount = count
	}

	urlString, err := GetSimpleText(a.reader, "URL (optional)", a.out)
	if err != nil {
		return err
	}
	t.URLString = urlString

	a.templates.Add(ctx, t)
	fmt.Fprintf(a.out, "Added template %s.\n", t.Name)
	return nil
}

func (a *App) RemoveTemplate(ctx context.Context, n int) error {
	t, err := a.templates.At(n - 1)
	if errors.Is(err, templates.ErrIndexOutOfRange) {
		return fmt.Errorf("%w: %d", errNoTemplate, n)
	}
	if err != nil {
		return err
	}

	a.templates.Delete(ctx, []uuid.UUID{t.ID})
	fmt.Fprintf(a.out, "Removed template %s.\n", t.Name)
	return nil
}
