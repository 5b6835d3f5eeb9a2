// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sigma

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/socctl/socctl/internal/fetch"
	"github.com/socctl/socctl/internal/log"
)

const (
	// DefaultRepoURL is the upstream SigmaHQ rules repository.
	DefaultRepoURL = "https://github.com/SigmaHQ/sigma.git"

	// ReleaseAPI is the GitHub latest-release endpoint for that repository.
	ReleaseAPI = "https://api.github.com/repos/SigmaHQ/sigma/releases/latest"

	// ReleaseSkipped is returned when the rate limit prevents an update check
	// and the local clone should be used as-is.
	ReleaseSkipped = "skipped"

	releaseRetries = 5
	maxResetWait   = 5 * time.Minute
)

// sleep is swapped out in tests.
var sleep = time.Sleep

// CheckGit verifies that git is available on the PATH.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("'git' is not installed or not found in the system PATH")
	}
	return nil
}

// CheckLatestRelease queries the GitHub release API for the latest tag. When
// the API rate limit is exhausted it waits for the reset if that is near,
// or returns ReleaseSkipped so the caller proceeds without updating. Other
// failures are retried with exponential backoff up to the retry ceiling.
func CheckLatestRelease(ctx context.Context, apiURL string) (string, error) {
	for retries := 0; retries < releaseRetries; retries++ {
		resp, err := fetch.Get(ctx, apiURL)
		if err != nil {
			log.Warnf("release check failed (attempt %d/%d): %v", retries+1, releaseRetries, err)
			sleep(time.Duration(1<<(retries+1)) * time.Second)
			continue
		}

		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
			reset, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
			wait := time.Until(time.Unix(reset, 0)) + time.Second
			if wait < 0 {
				wait = 0
			}
			if wait > maxResetWait {
				log.Warnf("rate limit exceeded, reset in %s; skipping update check", wait.Round(time.Second))
				return ReleaseSkipped, nil
			}
			log.Infof("rate limit exceeded, waiting %s until reset", wait.Round(time.Second))
			sleep(wait)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Warnf("release check returned status %d (attempt %d/%d)", resp.StatusCode, retries+1, releaseRetries)
			sleep(time.Duration(1<<(retries+1)) * time.Second)
			continue
		}

		tag := gjson.GetBytes(resp.Body, "tag_name").String()
		if tag == "" {
			tag = "unknown"
		}
		log.Debugf("latest release: tag=%s", tag)
		return tag, nil
	}

	return "", fmt.Errorf("failed to fetch the latest release after %d attempts", releaseRetries)
}

// CloneOrUpdate clones the repository into cloneDir, or brings an existing
// clone up to the latest release. A clone already at the latest tag is left
// alone.
func CloneOrUpdate(ctx context.Context, repoURL, latest, cloneDir string) error {
	if _, err := os.Stat(cloneDir); err != nil {
		log.Infof("cloning %s", repoURL)
		if err := runGit(ctx, "clone", repoURL, cloneDir); err != nil {
			return fmt.Errorf("failed to clone repository: %w", err)
		}
		return nil
	}

	out, err := exec.CommandContext(ctx, "git", "-C", cloneDir, "describe", "--tags").Output()
	if err != nil {
		return fmt.Errorf("failed to read current tag: %w", err)
	}
	if strings.TrimSpace(string(out)) == latest {
		log.Debug("local repository already at the latest release")
		return nil
	}

	log.Infof("updating repository to %s", latest)
	if err := runGit(ctx, "-C", cloneDir, "pull"); err != nil {
		return fmt.Errorf("failed to update repository: %w", err)
	}

	return nil
}

func runGit(ctx context.Context, args ...string) error {
	c := exec.CommandContext(ctx, "git", args...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
