package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daytree/pkg/node"
)

// Persistence is the storage contract for daily task trees. Trees are
// snapshots keyed by project and day; writing the same snapshot twice is
// harmless.
type Persistence interface {
	Load(ctx context.Context, project, day string) ([]*node.Node, error)
	Save(project, day string, forest []*node.Node) error
	Projects(ctx context.Context) []string
	Days(ctx context.Context, project string) []string
	CarryOver(ctx context.Context, project, fromDay, toDay string) (int, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// DayLayout is the key format for day identifiers.
const DayLayout = "2006-01-02"

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(ctx context.Context, project, day string) ([]*node.Node, error) {
	if strings.TrimSpace(project) == "" {
		return nil, errors.New("store: project required")
	}
	key := toKey(project, day)
	if !p.d.Has(key) {
		return nil, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	var forest []*node.Node
	if err := json.Unmarshal(val, &forest); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return forest, nil
}

func (p *persistence) Save(project, day string, forest []*node.Node) error {
	if strings.TrimSpace(project) == "" {
		return errors.New("store: project required")
	}
	data, err := json.Marshal(forest)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(project, day), data)
}

func (p *persistence) Projects(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		seen[fromProject(pk.Path[0])] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p *persistence) Days(ctx context.Context, project string) []string {
	encoded := toProject(project)
	days := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) > 0 && pk.Path[0] == encoded {
			days = append(days, pk.FileName)
		}
	}
	sort.Strings(days)
	return days
}

// CarryOver copies the incomplete nodes of a project's day into another day,
// marking them carried over. A node survives when it is incomplete itself or
// shelters an incomplete descendant, so the hierarchy above open work is
// preserved. Nodes already present in the target day are skipped, which
// makes repeated carries idempotent. Returns how many nodes were added.
func (p *persistence) CarryOver(ctx context.Context, project, fromDay, toDay string) (int, error) {
	if fromDay == toDay {
		return 0, errors.New("store: carry-over needs two distinct days")
	}
	source, err := p.Load(ctx, project, fromDay)
	if err != nil {
		return 0, err
	}
	carried := carryNodes(source)
	if len(carried) == 0 {
		return 0, nil
	}
	target, err := p.Load(ctx, project, toDay)
	if err != nil {
		return 0, err
	}
	present := make(map[string]struct{})
	for _, id := range node.IDs(target) {
		present[id] = struct{}{}
	}
	added := 0
	for _, n := range carried {
		if _, ok := present[n.ID]; ok {
			continue
		}
		target = append(target, n)
		added += node.Count([]*node.Node{n})
	}
	if added == 0 {
		return 0, nil
	}
	if err := p.Save(project, toDay, target); err != nil {
		return 0, err
	}
	return added, nil
}

// carryNodes filters a forest down to its incomplete chains, cloned and
// flagged CarriedOver.
func carryNodes(list []*node.Node) []*node.Node {
	out := make([]*node.Node, 0, len(list))
	for _, n := range list {
		if n == nil {
			continue
		}
		kids := carryNodes(n.Children)
		if n.Completed && len(kids) == 0 {
			continue
		}
		c := *n
		c.CarriedOver = true
		c.Children = kids
		out = append(out, &c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	if len(parts) < 4 {
		return &diskv.PathKey{FileName: s}
	}
	// day is the trailing yyyy-mm-dd triple
	split := len(parts) - 3
	return &diskv.PathKey{
		Path:     parts[:split],
		FileName: strings.Join(parts[split:], "-"),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `project-day`
func toKey(project, day string) string {
	return fmt.Sprintf("%s-%s", toProject(project), day)
}

func toProject(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func fromProject(s string) string {
	project, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: fromProject: %s\n", err)
		return s
	}
	return string(project)
}
