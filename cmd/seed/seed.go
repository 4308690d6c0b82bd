package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "xclone/internal/errors"
	"xclone/internal/repository"
	"xclone/internal/service"
)

// SeedUser is one entry of the seed file. Following lists usernames.
type SeedUser struct {
	FullName  string   `json:"fullName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Following []string `json:"following"`
}

type seedResult struct {
	Created int
	Skipped int
	Follows int
}

type seeder struct {
	auth  service.AuthService
	users service.UserService
	repo  repository.UserRepository
	log   *zap.Logger
}

// loadSeedUsers reads seed entries from a local file or an http(s) URL.
func loadSeedUsers(source string) ([]SeedUser, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var entries []SeedUser
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parse seed JSON: %w", err)
	}
	return entries, nil
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status code %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// run signs up every entry through the auth service, then writes follow edges.
// Entries whose username or email already exist are skipped, which makes the
// seed safe to re-run.
func (s *seeder) run(ctx context.Context, entries []SeedUser) (seedResult, error) {
	var res seedResult

	for _, entry := range entries {
		_, err := s.auth.Signup(ctx, service.SignupInput{
			FullName: entry.FullName,
			Username: entry.Username,
			Email:    entry.Email,
			Password: entry.Password,
		})
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, apperrors.ErrUsernameTaken), errors.Is(err, apperrors.ErrEmailTaken):
			res.Skipped++
		case apperrors.MapErrorToHTTP(err).IsInternal():
			return res, fmt.Errorf("signup %s: %w", entry.Username, err)
		default:
			s.log.Warn("skipping invalid seed user", zap.String("username", entry.Username), zap.Error(err))
			res.Skipped++
		}
	}

	ids := make(map[string]uuid.UUID, len(entries))
	resolve := func(username string) (uuid.UUID, error) {
		if id, ok := ids[username]; ok {
			return id, nil
		}
		user, err := s.users.GetProfile(ctx, username)
		if err != nil {
			return uuid.Nil, err
		}
		ids[username] = user.ID
		return user.ID, nil
	}

	for _, entry := range entries {
		for _, target := range entry.Following {
			followerID, err := resolve(entry.Username)
			if err != nil {
				return res, fmt.Errorf("resolve %s: %w", entry.Username, err)
			}
			followingID, err := resolve(target)
			if errors.Is(err, apperrors.ErrUserNotFound) {
				s.log.Warn("follow target not found", zap.String("username", entry.Username), zap.String("target", target))
				continue
			}
			if err != nil {
				return res, fmt.Errorf("resolve %s: %w", target, err)
			}
			if followerID == followingID {
				continue
			}
			if err := s.repo.AddFollow(ctx, followerID, followingID); err != nil {
				return res, fmt.Errorf("follow %s -> %s: %w", entry.Username, target, err)
			}
			if err := s.users.Invalidate(ctx, followerID, followingID); err != nil {
				return res, err
			}
			res.Follows++
		}
	}

	return res, nil
}
