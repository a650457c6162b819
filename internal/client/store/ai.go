package store

import (
	"context"
	"fmt"
	"strings"

	"release-desk/internal/dto"
)

const (
	blurbExcerptLimit       = 2000
	coverAspectRatio        = "2:3"
	illustrationAspectRatio = "9:16"
)

// GenerateBlurb writes a one paragraph blurb from a manuscript excerpt and saves it.
func (s *Store) GenerateBlurb(ctx context.Context, bookID uint, excerpt string) error {
	return s.generateField(ctx, "generate_blurb", LoadingBlurb, bookID,
		func(b dto.Book) string {
			return fmt.Sprintf("Generate a compelling, one-paragraph book blurb for a %s novel titled %q, using this excerpt:\n---\n%s",
				b.Genre, b.Title, truncateRunes(excerpt, blurbExcerptLimit))
		},
		func(text string) dto.UpdateBookRequest { return dto.UpdateBookRequest{Blurb: &text} },
		"Blurb generated and saved.")
}

// GenerateKeywords asks for ten SEO keywords and saves them on the book.
func (s *Store) GenerateKeywords(ctx context.Context, bookID uint) error {
	return s.generateField(ctx, "generate_keywords", LoadingKeywords, bookID,
		func(b dto.Book) string {
			return fmt.Sprintf("Generate a comma-separated list of 10 effective SEO keywords for a %s book titled %q.", b.Genre, b.Title)
		},
		func(text string) dto.UpdateBookRequest {
			kw := strings.TrimSpace(text)
			return dto.UpdateBookRequest{Keywords: &kw}
		},
		"Keywords generated and saved.")
}

func (s *Store) generateField(
	ctx context.Context,
	action string,
	key LoadingKey,
	bookID uint,
	prompt func(dto.Book) string,
	patch func(text string) dto.UpdateBookRequest,
	done string,
) error {
	b, err := s.lookupBook(action, bookID)
	if err != nil {
		return err
	}
	if s.ai == nil {
		return s.fail(action, ErrNoAssistant.Error(), ErrNoAssistant)
	}

	defer s.setLoading(key)()

	text, err := s.ai.GenerateText(ctx, prompt(b))
	if err != nil {
		return s.fail(action, errorMessage(err), err)
	}
	if err := s.updateBook(ctx, bookID, patch(text)); err != nil {
		return s.fail(action, errorMessage(err), err)
	}
	s.succeed(done)
	return nil
}

// GenerateCover creates cover art for the book and stores it as the cover image.
func (s *Store) GenerateCover(ctx context.Context, bookID uint) error {
	b, err := s.lookupBook("generate_cover", bookID)
	if err != nil {
		return err
	}
	if s.ai == nil {
		return s.fail("generate_cover", ErrNoAssistant.Error(), ErrNoAssistant)
	}

	defer s.setLoading(LoadingBookCover)()

	prompt := fmt.Sprintf("A professional book cover for a %s book titled %q by %s. Modern, eye-catching design.", b.Genre, b.Title, b.Author)
	url, err := s.ai.GenerateImage(ctx, prompt, coverAspectRatio)
	if err != nil {
		return s.fail("generate_cover", errorMessage(err), err)
	}
	if err := s.updateBook(ctx, bookID, dto.UpdateBookRequest{CoverImageURL: &url}); err != nil {
		return s.fail("generate_cover", errorMessage(err), err)
	}
	s.succeed("Book cover generated.")
	return nil
}

// GenerateIllustration returns a fresh illustration for prompt. It is not saved; pass it
// to SaveIllustration to keep it.
func (s *Store) GenerateIllustration(ctx context.Context, prompt string) (dto.Illustration, error) {
	if strings.TrimSpace(prompt) == "" {
		return dto.Illustration{}, s.fail("generate_illustration", "Please enter a prompt for the illustration.", ErrEmptyPrompt)
	}
	if s.ai == nil {
		return dto.Illustration{}, s.fail("generate_illustration", ErrNoAssistant.Error(), ErrNoAssistant)
	}

	defer s.setLoading(LoadingIllustration)()

	url, err := s.ai.GenerateImage(ctx, prompt, illustrationAspectRatio)
	if err != nil {
		return dto.Illustration{}, s.fail("generate_illustration", errorMessage(err), err)
	}
	return dto.Illustration{URL: url, Prompt: prompt}, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
