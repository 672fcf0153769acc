// Package history summarizes recent version-control activity for a
// repository. It is an optional collaborator: the walk pipeline never
// touches it, and the renderer consumes its output as an opaque value.
package history

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// shortHashLen truncates commit IDs for the summary.
const shortHashLen = 8

// Aggregate builds a HistorySummary for the repository at path, scanning
// at most maxCommits commits from HEAD. A path that is not a git
// repository (or has no commits yet) returns nil with no error, so the
// digest simply omits the history section.
func Aggregate(path string, maxCommits int) (*digest.HistorySummary, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	commits, contributors, err := recentCommits(repo, maxCommits)
	if err != nil {
		return nil, err
	}
	if commits == nil {
		// Repository exists but has no commits.
		return nil, nil
	}

	branches, err := branchNames(repo)
	if err != nil {
		return nil, err
	}

	return &digest.HistorySummary{
		CommitCount:  len(commits),
		Commits:      commits,
		Branches:     branches,
		Contributors: contributors,
	}, nil
}

// recentCommits walks the log from HEAD, newest first, bounded by limit.
func recentCommits(repo *git.Repository, limit int) ([]digest.Commit, map[string]int, error) {
	head, err := repo.Head()
	if err != nil {
		// Empty repository: no HEAD yet.
		return nil, nil, nil
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	commits := make([]digest.Commit, 0, limit)
	contributors := make(map[string]int)
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= limit {
			return storer.ErrStop
		}
		commits = append(commits, digest.Commit{
			ID:        c.Hash.String()[:shortHashLen],
			Author:    c.Author.Name,
			Message:   firstLine(c.Message),
			Timestamp: c.Author.When.UTC(),
		})
		contributors[c.Author.Name]++
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking commits: %w", err)
	}
	return commits, contributors, nil
}

// branchNames lists local branches, sorted for deterministic output.
func branchNames(repo *git.Repository) ([]string, error) {
	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking branches: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func firstLine(message string) string {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			return message[:i]
		}
	}
	return message
}
