package writing

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/toefl-prep/backend/internal/generator"
	"github.com/toefl-prep/backend/internal/models"
)

const (
	defaultPromptsPath = "data/prompts/prompts.json"

	// emailPoolSize is how many fresh email variants one LLM call asks for.
	emailPoolSize = 24

	// maxSignatureMemory bounds the seen-email dedup set.
	maxSignatureMemory = 2000
)

// runtimeIDPattern recovers the base prompt id from a generated variant id
// after a process restart wiped the runtime map.
var runtimeIDPattern = regexp.MustCompile(`^gen-(email|discussion)-(.+)-[0-9a-f]{8}$`)

// PromptStore serves ingested writing prompts and generates per-request
// variants so repeat students do not see identical tasks. Base prompts load
// from a JSON file; email variants come from the LLM in pooled batches with
// a local fallback.
type PromptStore struct {
	path string
	llm  generator.LLMClient

	mu             sync.Mutex
	prompts        []models.WritingPrompt
	runtimePrompts map[string]*models.WritingPrompt
	emailPool      []models.WritingPrompt
	seenSignatures map[string]bool
	seenOrder      []string
	rng            *rand.Rand
}

func NewPromptStore(llm generator.LLMClient, rng *rand.Rand) *PromptStore {
	s := &PromptStore{
		path:           getEnv("PROMPTS_PATH", defaultPromptsPath),
		llm:            llm,
		runtimePrompts: make(map[string]*models.WritingPrompt),
		seenSignatures: make(map[string]bool),
		rng:            rng,
	}
	if err := s.Reload(); err != nil {
		log.Printf("WARN: [writing] prompt load failed: %v", err)
	}
	return s
}

// Reload re-reads the prompt file. A missing file leaves an empty store
// rather than failing startup.
func (s *PromptStore) Reload() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.prompts = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("read prompts: %w", err)
	}

	var prompts []models.WritingPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		return fmt.Errorf("decode prompts: %w", err)
	}

	s.mu.Lock()
	s.prompts = prompts
	s.mu.Unlock()
	return nil
}

// GetPromptByID resolves runtime variant ids first, then base ids. Variant
// ids minted before a restart fall back to their base prompt.
func (s *PromptStore) GetPromptByID(promptID string) *models.WritingPrompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.runtimePrompts[promptID]; ok {
		return p
	}
	for i := range s.prompts {
		if s.prompts[i].PromptID == promptID {
			return &s.prompts[i]
		}
	}
	if m := runtimeIDPattern.FindStringSubmatch(promptID); m != nil {
		for i := range s.prompts {
			if s.prompts[i].PromptID == m[2] {
				return &s.prompts[i]
			}
		}
	}
	return nil
}

// SourceIDsByType lists every source id a student could be served for the
// task type, including LLM-generated email variants already seen.
func (s *PromptStore) SourceIDsByType(taskType models.TaskType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, p := range s.prompts {
		if p.TaskType == taskType && p.PromptID != "" {
			ids = append(ids, p.PromptID)
		}
	}
	if taskType == models.TaskEmail {
		for sig := range s.seenSignatures {
			ids = append(ids, "llm-"+sig)
		}
	}
	return ids
}

// RandomByType picks a base prompt of the task type and returns a fresh
// variant of it, registering the variant under a new runtime id. Prompts
// whose source id is in exclude are avoided when possible.
func (s *PromptStore) RandomByType(ctx context.Context, taskType models.TaskType, exclude map[string]bool) *models.WritingPrompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []models.WritingPrompt
	for _, p := range s.prompts {
		if p.TaskType == taskType {
			candidates = append(candidates, p)
		}
	}
	if taskType != models.TaskEmail && len(exclude) > 0 {
		var filtered []models.WritingPrompt
		for _, p := range candidates {
			if !exclude[p.PromptID] {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	base := candidates[s.rng.Intn(len(candidates))]

	var variant models.WritingPrompt
	if taskType == models.TaskEmail {
		variant = s.nextEmailVariant(ctx, base, candidates, exclude)
		sig := emailSignature(&variant)
		if variant.SourcePromptID == "" {
			variant.SourcePromptID = "llm-" + sig
		}
		s.rememberSignature(sig)
	} else {
		variant = s.makeDiscussionVariant(base)
		variant.SourcePromptID = base.PromptID
	}

	variantID := fmt.Sprintf("gen-%s-%s-%s", taskType, base.PromptID,
		strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	variant.PromptID = variantID
	s.runtimePrompts[variantID] = &variant
	return &variant
}

// nextEmailVariant pops from the LLM pool, refilling it when empty, and
// falls back to a locally shuffled variant when the provider is down.
// Caller holds the lock.
func (s *PromptStore) nextEmailVariant(ctx context.Context, base models.WritingPrompt, bases []models.WritingPrompt, exclude map[string]bool) models.WritingPrompt {
	// keep only unused items in pool
	var kept []models.WritingPrompt
	for _, v := range s.emailPool {
		if !exclude[v.SourcePromptID] {
			kept = append(kept, v)
		}
	}
	s.emailPool = kept

	if len(s.emailPool) == 0 {
		s.emailPool = append(s.emailPool, s.generateEmailPool(ctx, bases, exclude)...)
	}
	if n := len(s.emailPool); n > 0 {
		variant := s.emailPool[n-1]
		s.emailPool = s.emailPool[:n-1]
		return variant
	}
	if variant, ok := s.makeEmailVariantLLM(ctx, base); ok {
		return variant
	}
	return s.makeEmailVariant(base)
}

// makeEmailVariantLLM rewrites one base prompt with a single provider call.
// It runs when the pooled refill came back empty, before giving up on the
// provider entirely. Caller holds the lock.
func (s *PromptStore) makeEmailVariantLLM(ctx context.Context, base models.WritingPrompt) (models.WritingPrompt, bool) {
	if s.llm == nil {
		return models.WritingPrompt{}, false
	}

	bulletJSON, _ := json.Marshal(base.BulletPoints)
	instruction := fmt.Sprintf(
		"Rewrite this TOEFL email task into a NEW but equivalent practice variant.\n"+
			"Return ONLY valid JSON object with keys: title, to_field, subject, bullet_points, raw_text.\n"+
			"Constraints:\n"+
			"- Keep task type as email.\n"+
			"- Keep tone practical and test-like.\n"+
			"- bullet_points must be 3 to 5 concise action points.\n"+
			"- No markdown, no extra text.\n\n"+
			"Base title: %s\nBase recipient: %s\nBase subject: %s\nBase bullet_points: %s\nBase raw_text: %s\n",
		baseTitle(base), base.ToField, base.Subject, bulletJSON, base.RawText,
	)

	resp, err := s.llm.Generate(ctx,
		"You generate high-quality TOEFL email task variants as strict JSON.",
		instruction)
	if err != nil {
		log.Printf("WARN: [writing] email variant generation failed: %v", err)
		return models.WritingPrompt{}, false
	}

	row, ok := extractEmailObject(resp.Content)
	if !ok {
		return models.WritingPrompt{}, false
	}
	return validateEmailVariant(base, row)
}

// generateEmailPool asks the LLM for a batch of new email prompts seeded by
// a sample of the ingested bases. Caller holds the lock.
func (s *PromptStore) generateEmailPool(ctx context.Context, bases []models.WritingPrompt, exclude map[string]bool) []models.WritingPrompt {
	if s.llm == nil {
		return nil
	}

	sample := make([]models.WritingPrompt, len(bases))
	copy(sample, bases)
	s.rng.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
	if len(sample) > 6 {
		sample = sample[:6]
	}

	type seed struct {
		Title        string   `json:"title"`
		ToField      string   `json:"to_field"`
		Subject      string   `json:"subject"`
		BulletPoints []string `json:"bullet_points"`
		RawText      string   `json:"raw_text"`
		PromptID     string   `json:"prompt_id"`
	}
	seeds := make([]seed, 0, len(sample))
	for _, b := range sample {
		seeds = append(seeds, seed{b.Title, b.ToField, b.Subject, b.BulletPoints, b.RawText, b.PromptID})
	}
	seedJSON, _ := json.Marshal(seeds)

	avoidText := ""
	if len(exclude) > 0 {
		var sigs []string
		for id := range exclude {
			sigs = append(sigs, id)
			if len(sigs) == 50 {
				break
			}
		}
		avoidText = " Avoid creating prompts that are semantically similar to these signature hashes: " + strings.Join(sigs, ", ") + "."
	}

	instruction := fmt.Sprintf(
		"Generate %d unique TOEFL email practice prompts as JSON array. "+
			"Each object keys: title, to_field, subject, bullet_points, raw_text. "+
			"Rules: realistic test-style email context, 3-5 clear bullet_points, polite action-oriented tasks, and diverse topics.%s Seed examples: %s",
		emailPoolSize, avoidText, seedJSON,
	)

	resp, err := s.llm.Generate(ctx,
		"You generate TOEFL email writing prompts as strict JSON array only.",
		instruction)
	if err != nil {
		log.Printf("WARN: [writing] email pool generation failed: %v", err)
		return nil
	}

	rows := extractEmailArray(resp.Content)
	defaultBase := bases[s.rng.Intn(len(bases))]
	seenLocal := make(map[string]bool)
	var valid []models.WritingPrompt
	for _, row := range rows {
		variant, ok := validateEmailVariant(defaultBase, row)
		if !ok {
			continue
		}
		sig := emailSignature(&variant)
		if seenLocal[sig] || exclude["llm-"+sig] || s.seenSignatures[sig] {
			continue
		}
		seenLocal[sig] = true
		variant.SourcePromptID = "llm-" + sig
		valid = append(valid, variant)
	}
	s.rng.Shuffle(len(valid), func(i, j int) { valid[i], valid[j] = valid[j], valid[i] })
	return valid
}

// rawEmailVariant is the LLM's answer shape for one email prompt.
type rawEmailVariant struct {
	Title        string   `json:"title"`
	ToField      string   `json:"to_field"`
	Subject      string   `json:"subject"`
	BulletPoints []string `json:"bullet_points"`
	RawText      string   `json:"raw_text"`
}

// extractEmailObject decodes a single, possibly fenced, JSON object answer.
func extractEmailObject(text string) (rawEmailVariant, bool) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`")
		text = strings.TrimPrefix(text, "json")
		text = strings.TrimSpace(text)
	}
	var row rawEmailVariant
	if err := json.Unmarshal([]byte(text), &row); err != nil {
		return rawEmailVariant{}, false
	}
	return row, true
}

func extractEmailArray(text string) []rawEmailVariant {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`")
		text = strings.TrimPrefix(text, "json")
		text = strings.TrimSpace(text)
	}
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}
	var rows []rawEmailVariant
	if err := json.Unmarshal([]byte(text[start:end+1]), &rows); err != nil {
		return nil
	}
	return rows
}

// validateEmailVariant screens one generated row, backfilling missing
// fields from the base prompt. Rows with fewer than three bullets are
// rejected.
func validateEmailVariant(base models.WritingPrompt, row rawEmailVariant) (models.WritingPrompt, bool) {
	var bullets []string
	for _, b := range row.BulletPoints {
		if t := strings.TrimSpace(b); t != "" {
			bullets = append(bullets, t)
		}
	}
	if len(bullets) < 3 {
		return models.WritingPrompt{}, false
	}

	rawText := strings.TrimSpace(row.RawText)
	if len(rawText) < 40 {
		rawText = strings.TrimSpace(base.RawText)
	}
	title := strings.TrimSpace(row.Title)
	if title == "" {
		title = baseTitle(base) + " - New Variant"
	}

	variant := base
	variant.TaskType = models.TaskEmail
	variant.Title = title
	variant.ToField = firstNonEmpty(strings.TrimSpace(row.ToField), base.ToField)
	variant.Subject = firstNonEmpty(strings.TrimSpace(row.Subject), base.Subject)
	variant.BulletPoints = bullets
	variant.RawText = rawText
	return variant, true
}

// makeEmailVariant is the offline fallback: shuffle the bullets and append
// one extra instruction.
func (s *PromptStore) makeEmailVariant(base models.WritingPrompt) models.WritingPrompt {
	variant := base
	bullets := make([]string, len(base.BulletPoints))
	copy(bullets, base.BulletPoints)
	s.rng.Shuffle(len(bullets), func(i, j int) { bullets[i], bullets[j] = bullets[j], bullets[i] })

	addOns := []string{
		"Include one specific example from your recent experience.",
		"Use a clear action request in your final paragraph.",
		"Keep tone polite and solution-oriented.",
	}
	if len(bullets) > 0 {
		bullets = append(bullets, addOns[s.rng.Intn(len(addOns))])
	}
	variant.BulletPoints = bullets
	variant.Title = baseTitle(base) + " - New Variant"
	return variant
}

func (s *PromptStore) makeDiscussionVariant(base models.WritingPrompt) models.WritingPrompt {
	variant := base
	posts := make([]string, len(base.StudentPosts))
	copy(posts, base.StudentPosts)
	s.rng.Shuffle(len(posts), func(i, j int) { posts[i], posts[j] = posts[j], posts[i] })

	addOns := []string{
		"Explain one practical implication of your view.",
		"Add one counterargument before your conclusion.",
		"Connect your argument to a real-world example.",
	}
	professorPrompt := strings.TrimSpace(base.ProfessorPrompt)
	if professorPrompt != "" {
		professorPrompt += " " + addOns[s.rng.Intn(len(addOns))]
	}
	variant.ProfessorPrompt = professorPrompt
	variant.StudentPosts = posts
	if base.Title != "" {
		variant.Title = base.Title + " - New Variant"
	} else {
		variant.Title = "Academic Discussion - New Variant"
	}
	return variant
}

// emailSignature hashes the content fields that make two email prompts
// "the same task" regardless of ids.
func emailSignature(p *models.WritingPrompt) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(p.Title)))
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(strings.TrimSpace(p.ToField)))
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(strings.TrimSpace(p.Subject)))
	b.WriteByte('\n')
	for _, bullet := range p.BulletPoints {
		b.WriteString(strings.ToLower(strings.TrimSpace(bullet)))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(strings.TrimSpace(p.RawText)))

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:20]
}

// rememberSignature records a served email signature with FIFO eviction.
// Caller holds the lock.
func (s *PromptStore) rememberSignature(sig string) {
	if s.seenSignatures[sig] {
		return
	}
	s.seenSignatures[sig] = true
	s.seenOrder = append(s.seenOrder, sig)
	if len(s.seenOrder) > maxSignatureMemory {
		old := s.seenOrder[0]
		s.seenOrder = s.seenOrder[1:]
		delete(s.seenSignatures, old)
	}
}

func baseTitle(base models.WritingPrompt) string {
	if base.Title != "" {
		return base.Title
	}
	return "Write an Email"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
