package usecase

import (
	"context"
	"regexp"
	"sync"

	"clipstream/internal/entity"
	"clipstream/internal/repo/persistent"
)

var hashtagPattern = regexp.MustCompile(`#[a-zA-Z]+`)

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// extractHashtags returns the distinct hashtag tokens in text, in order of
// first appearance. A token is a '#' not glued to the end of a word,
// followed by letters, and not running into a word character or ';'.
func extractHashtags(text string) []string {
	seen := make(map[string]bool)
	var tokens []string

	for _, loc := range hashtagPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isWordChar(text[start-1]) {
			continue
		}
		if end < len(text) && (isWordChar(text[end]) || text[end] == ';') {
			continue
		}
		token := text[start:end]
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// HashtagResolver maps caption text to persisted hashtag rows with
// get-or-create semantics.
type HashtagResolver struct {
	repo persistent.HashtagRepository
}

func NewHashtagResolver(repo persistent.HashtagRepository) *HashtagResolver {
	return &HashtagResolver{repo: repo}
}

// Resolve looks up every distinct token concurrently. Text without
// hashtags yields an empty result, not an error.
func (r *HashtagResolver) Resolve(ctx context.Context, text string) ([]entity.Hashtag, error) {
	tokens := extractHashtags(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	tags := make([]entity.Hashtag, len(tokens))
	errs := make([]error, len(tokens))

	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			tag, err := r.repo.GetOrCreate(ctx, token)
			if err != nil {
				errs[i] = err
				return
			}
			tags[i] = *tag
		}(i, token)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return tags, nil
}
