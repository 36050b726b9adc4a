package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-invitekit/internal/tui"
	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/field"
	"github.com/goliatone/go-invitekit/pkg/session"
)

// wizardUI walks the authoring steps in the terminal. Each pass prompts the
// current step's fields, then lets the host advance, go back, save, or quit.
type wizardUI struct {
	driver     tui.PromptDriver
	session    *session.Session
	previewOut string
	log        *zap.Logger
}

func (w *wizardUI) Run(ctx context.Context) error {
	for {
		step, index := w.session.Step()
		if err := w.driver.Info(ctx, fmt.Sprintf("\n== Step %d: %s ==", index+1, step.Title)); err != nil {
			return err
		}

		if w.session.IsReview() {
			done, err := w.reviewStep(ctx)
			if err != nil || done {
				return err
			}
			continue
		}

		if err := w.promptFields(ctx); err != nil {
			return err
		}

		action, err := w.driver.Select(ctx, tui.SelectConfig{
			Message: "Next?",
			Options: stepActions(index),
		})
		if err != nil {
			return err
		}
		switch stepActions(index)[action] {
		case actionContinue:
			if err := w.session.Next(); err != nil {
				w.log.Debug("step blocked", zap.Int("step", index))
			}
		case actionBack:
			w.session.Back()
		case actionSave:
			if err := w.session.SaveDraft(ctx); err == nil {
				_ = w.driver.Info(ctx, "Draft saved.")
			}
		case actionQuit:
			return nil
		}
	}
}

const (
	actionContinue = "Continue"
	actionBack     = "Back"
	actionSave     = "Save draft"
	actionQuit     = "Quit"
)

func stepActions(index int) []string {
	if index == 0 {
		return []string{actionContinue, actionSave, actionQuit}
	}
	return []string{actionContinue, actionBack, actionSave, actionQuit}
}

func (w *wizardUI) promptFields(ctx context.Context) error {
	for _, frag := range w.session.Fragments() {
		if err := w.promptFragment(ctx, frag); err != nil {
			return err
		}
	}
	return nil
}

func (w *wizardUI) promptFragment(ctx context.Context, frag field.Fragment) error {
	def := frag.Field
	label := def.Label
	if def.Required {
		label += " *"
	}

	switch frag.Control {
	case field.ControlText, field.ControlDate, field.ControlTime, field.ControlURL:
		value, err := w.driver.Input(ctx, tui.InputConfig{
			Message:   label,
			Default:   frag.Text,
			Help:      def.Placeholder,
			Validator: maxLengthValidator(frag.MaxLength),
		})
		if err != nil {
			return err
		}
		w.session.SetField(def.Key, value)
	case field.ControlTextArea:
		value, err := w.driver.TextArea(ctx, tui.TextAreaConfig{
			Message: label,
			Default: frag.Text,
		})
		if err != nil {
			return err
		}
		w.session.SetField(def.Key, value)
	case field.ControlToggle:
		value, err := w.driver.Confirm(ctx, tui.ConfirmConfig{
			Message: label,
			Default: frag.Bool,
		})
		if err != nil {
			return err
		}
		w.session.SetField(def.Key, value)
	case field.ControlNumber:
		current := ""
		if frag.HasNumber {
			current = strconv.FormatFloat(frag.Number, 'f', -1, 64)
		}
		value, err := w.driver.Input(ctx, tui.InputConfig{
			Message:   label,
			Default:   current,
			Validator: numberValidator,
		})
		if err != nil {
			return err
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			n, _ := strconv.ParseFloat(trimmed, 64)
			w.session.SetField(def.Key, n)
		}
	case field.ControlImage:
		value, err := w.driver.Input(ctx, tui.InputConfig{
			Message: label + " (image URL)",
			Default: frag.Text,
		})
		if err != nil {
			return err
		}
		w.session.SetField(def.Key, value)
	case field.ControlImageSet:
		value, err := w.driver.Input(ctx, tui.InputConfig{
			Message: label + " (comma-separated image URLs)",
			Default: strings.Join(frag.Images, ", "),
		})
		if err != nil {
			return err
		}
		w.session.SetField(def.Key, splitList(value))
	case field.ControlSchedule:
		return w.promptSchedule(ctx, frag)
	}
	return nil
}

func (w *wizardUI) promptSchedule(ctx context.Context, frag field.Fragment) error {
	def := frag.Field
	if len(frag.Schedule) > 0 {
		_ = w.driver.Info(ctx, fmt.Sprintf("%s has %d entries.", def.Label, len(frag.Schedule)))
	}
	for {
		more, err := w.driver.Confirm(ctx, tui.ConfirmConfig{
			Message: fmt.Sprintf("Add an entry to %s?", def.Label),
		})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		entry := field.ScheduleEntry{}
		if entry.Time, err = w.driver.Input(ctx, tui.InputConfig{Message: "Time (e.g. 15:00)"}); err != nil {
			return err
		}
		if entry.Title, err = w.driver.Input(ctx, tui.InputConfig{Message: "Title"}); err != nil {
			return err
		}
		if entry.Description, err = w.driver.Input(ctx, tui.InputConfig{Message: "Description (optional)"}); err != nil {
			return err
		}
		w.session.AddScheduleEntry(def.Key, entry)
	}
}

// reviewStep renders the preview, negotiates the slug, and runs the publish
// confirmation flow. Returns done=true when the wizard should exit.
func (w *wizardUI) reviewStep(ctx context.Context) (bool, error) {
	if w.previewOut != "" {
		if html, err := w.session.RenderPreview(ctx); err != nil {
			w.log.Warn("preview render failed", zap.Error(err))
		} else if err := os.WriteFile(w.previewOut, html, 0o644); err != nil {
			w.log.Warn("preview write failed", zap.Error(err))
		} else {
			_ = w.driver.Info(ctx, "Preview written to "+w.previewOut)
		}
	}

	options := []string{"Publish", "Edit slug", actionBack, actionSave, actionQuit}
	choice, err := w.driver.Select(ctx, tui.SelectConfig{
		Message: "Review",
		Options: options,
	})
	if err != nil {
		return false, err
	}

	switch options[choice] {
	case "Publish":
		return w.publish(ctx)
	case "Edit slug":
		return false, w.editSlug(ctx)
	case actionBack:
		w.session.Back()
	case actionSave:
		if err := w.session.SaveDraft(ctx); err == nil {
			_ = w.driver.Info(ctx, "Draft saved.")
		}
	case actionQuit:
		return true, nil
	}
	return false, nil
}

func (w *wizardUI) editSlug(ctx context.Context) error {
	current := w.session.Slug().Candidate
	value, err := w.driver.Input(ctx, tui.InputConfig{
		Message: "Invitation URL slug",
		Default: current,
		Validator: func(s string) error {
			if normalized := draft.NormalizeSlug(s); !draft.ValidSlug(normalized) {
				return fmt.Errorf("use letters, digits and hyphens")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	normalized := w.session.SetSlugCandidate(ctx, value)
	return w.driver.Info(ctx, "Your invitation will live at /i/"+normalized)
}

func (w *wizardUI) publish(ctx context.Context) (bool, error) {
	report, err := w.session.RequestPublish()
	if err != nil {
		return false, nil
	}
	if !report.Ok() {
		return false, nil
	}

	confirmed, err := w.driver.Confirm(ctx, tui.ConfirmConfig{
		Message: "Publish this invitation? Guests with the link will see it.",
	})
	if err != nil {
		return false, err
	}
	if !confirmed {
		return false, w.session.CancelPublish()
	}

	if err := w.session.ConfirmPublish(ctx); err != nil {
		return false, nil
	}
	invite := w.session.Invite()
	_ = w.driver.Info(ctx, "Published! Share /i/"+invite.Slug)
	return true, nil
}

func maxLengthValidator(max int) func(string) error {
	if max <= 0 {
		return nil
	}
	return func(s string) error {
		if len(s) > max {
			return fmt.Errorf("keep it under %d characters", max)
		}
		return nil
	}
}

func numberValidator(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
