package fsskillsource

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flexigpt/skillrouter-go/spec"
)

const (
	skillFileName   = "SKILL.md"
	maxSkillMDBytes = 2 << 20 // 2 MiB
)

// readSkillDir reads and validates a skill directory's SKILL.md,
// returning a source ready for registry validation. The directory
// basename becomes the skill ID; frontmatter provides name and
// description; the markdown body is the guidance text.
func readSkillDir(ctx context.Context, rootDir string) (spec.Source, error) {
	if err := ctx.Err(); err != nil {
		return spec.Source{}, fmt.Errorf("readSkillDir: %w", err)
	}

	root := strings.TrimSpace(rootDir)
	if root == "" {
		return spec.Source{}, fmt.Errorf("%w: empty rootDir", spec.ErrInvalidArgument)
	}

	id := filepath.Base(root)
	if err := validateID(id); err != nil {
		return spec.Source{}, err
	}

	skillMDPath := filepath.Join(root, skillFileName)

	// Disallow SKILL.md being a symlink.
	if lst, lerr := os.Lstat(skillMDPath); lerr == nil {
		if lst.Mode()&os.ModeSymlink != 0 {
			return spec.Source{}, errors.New("SKILL.md must not be a symlink")
		}
		if !lst.Mode().IsRegular() {
			return spec.Source{}, errors.New("SKILL.md must be a regular file")
		}
	}

	data, sha, err := readAllLimitedAndDigest(skillMDPath)
	if err != nil {
		return spec.Source{}, err
	}

	src, err := ParseSkillMD(skillMDPath, id, data)
	if err != nil {
		return spec.Source{}, err
	}
	src.Digest = "sha256:" + sha
	return src, nil
}

// ParseSkillMD parses SKILL.md content: required YAML frontmatter with
// name and description, and a markdown body. Origin labels the source
// in validation reports; id is the stable skill identifier. Useful for
// in-memory and embedded skill catalogs as well as the fs walker.
func ParseSkillMD(origin, id string, data []byte) (spec.Source, error) {
	fm, body, hasFM, err := splitFrontmatter(string(data))
	if err != nil {
		return spec.Source{}, err
	}
	if !hasFM {
		return spec.Source{}, errors.New("SKILL.md must contain YAML frontmatter")
	}

	props := map[string]any{}
	if err := yaml.Unmarshal([]byte(fm), &props); err != nil {
		return spec.Source{}, fmt.Errorf("invalid frontmatter YAML: %w", err)
	}

	name := strings.TrimSpace(asString(props["name"]))
	description := strings.TrimSpace(asString(props["description"]))
	if name == "" {
		return spec.Source{}, errors.New("frontmatter.name is required")
	}
	if description == "" {
		return spec.Source{}, errors.New("frontmatter.description is required")
	}
	if len(description) > 1024 {
		return spec.Source{}, errors.New("frontmatter.description too long (max 1024)")
	}

	return spec.Source{
		Origin:      origin,
		ID:          id,
		Name:        name,
		Description: description,
		Body:        strings.TrimLeft(body, "\r\n"),
		Properties:  props,
	}, nil
}

func readAllLimitedAndDigest(path string) (data []byte, dataSHA string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err = io.ReadAll(io.LimitReader(f, int64(maxSkillMDBytes)+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > maxSkillMDBytes {
		return nil, "", fmt.Errorf("SKILL.md too large (max %d bytes)", maxSkillMDBytes)
	}

	sum := sha256.Sum256(data)
	return data, hex.EncodeToString(sum[:]), nil
}

func splitFrontmatter(s string) (frontmatter, body string, has bool, err error) {
	br := bufio.NewReader(strings.NewReader(s))

	first, ferr := br.ReadString('\n')
	if ferr != nil && !errors.Is(ferr, io.EOF) {
		return "", "", false, fmt.Errorf("read first line: %w", ferr)
	}
	if strings.TrimSpace(strings.TrimRight(first, "\r\n")) != "---" {
		return "", s, false, nil
	}

	var fmLines []string
	foundEnd := false
	for {
		line, lerr := br.ReadString('\n')
		if lerr != nil && !errors.Is(lerr, io.EOF) {
			return "", "", false, fmt.Errorf("read frontmatter line: %w", lerr)
		}
		lineTrim := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(lineTrim) == "---" {
			foundEnd = true
			break
		}
		fmLines = append(fmLines, lineTrim)
		if errors.Is(lerr, io.EOF) {
			break
		}
	}
	if !foundEnd {
		return "", "", false, errors.New("unterminated frontmatter (missing closing ---)")
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return "", "", false, fmt.Errorf("read body: %w", err)
	}
	return strings.Join(fmLines, "\n"), string(rest), true, nil
}

func validateID(id string) error {
	if id == "" {
		return errors.New("skill id (directory name) is required")
	}
	if len(id) > 64 {
		return errors.New("skill id too long (max 64)")
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return errors.New("skill id must not start or end with '-'")
	}
	if strings.Contains(id, "--") {
		return errors.New("skill id must not contain consecutive '--'")
	}
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			continue
		}
		return fmt.Errorf("skill id contains invalid character %q", string(r))
	}
	return nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
