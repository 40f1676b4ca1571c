package sentence

import (
	"math"
	"math/rand"
	"sort"
)

// Select picks count candidates from the pool under format, family, topic,
// context, and grammar-tag quotas. Phases run in strict priority order; a
// candidate consumed by an earlier phase is never reconsidered. Ties within
// a phase are broken by the shuffle order established up front.
func Select(pool []Candidate, count int, rng *rand.Rand) []Candidate {
	if len(pool) <= count {
		out := make([]Candidate, len(pool))
		copy(out, pool)
		if len(out) > count {
			out = out[:count]
		}
		return out
	}

	shuffled := make([]Candidate, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var out []Candidate
	used := make(map[int]bool)

	take := func(i int) {
		out = append(out, shuffled[i])
		used[i] = true
	}

	// 1) Seed required families so every set includes all key types when
	// the pool provides them.
	requiredFamilies := []string{FamilyStatementResponse, FamilyInterrogative, FamilyReplyToQuestion}
	for _, family := range requiredFamilies {
		for i, c := range shuffled {
			if used[i] {
				continue
			}
			if c.Family() == family {
				take(i)
				break
			}
		}
	}

	// Larger sets get one more interrogative and reply-to-question for
	// coverage.
	if count >= 8 {
		for _, family := range []string{FamilyInterrogative, FamilyReplyToQuestion} {
			for i, c := range shuffled {
				if len(out) >= count {
					break
				}
				if used[i] {
					continue
				}
				if c.Family() == family {
					take(i)
					break
				}
			}
		}
	}

	// 2) Enforce format quotas to avoid question-heavy sets.
	targetStatement := int(math.Round(float64(count) * 0.5))
	if targetStatement < 3 {
		targetStatement = 3
	}
	targetQuestion := int(math.Round(float64(count) * 0.25))
	if targetQuestion < 2 {
		targetQuestion = 2
	}
	targetExclamation := 0
	if count >= 8 {
		targetExclamation = 1
	}

	formatBuckets := make(map[string][]int)
	for i, c := range shuffled {
		fg := c.FormatGroup()
		formatBuckets[fg] = append(formatBuckets[fg], i)
	}

	current := func(format string) int {
		n := 0
		for _, c := range out {
			if c.FormatGroup() == format {
				n++
			}
		}
		return n
	}

	takeFromBucket := func(format string, n int) {
		bucket := formatBuckets[format]
		rng.Shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
		taken := 0
		for _, idx := range bucket {
			if len(out) >= count || taken >= n {
				break
			}
			if used[idx] {
				continue
			}
			take(idx)
			taken++
		}
	}

	takeFromBucket(FormatStatement, max(0, targetStatement-current(FormatStatement)))
	takeFromBucket(FormatQuestion, max(0, targetQuestion-current(FormatQuestion)))
	takeFromBucket(FormatExclamation, max(0, targetExclamation-current(FormatExclamation)))

	// Top up remaining room, non-question formats first.
	for _, format := range []string{FormatStatement, FormatExclamation, FormatQuestion} {
		if len(out) >= count {
			break
		}
		takeFromBucket(format, count-len(out))
	}

	// 3) Re-check families after quota fill and backfill if still missing.
	missingFamilies := map[string]bool{
		FamilyStatementResponse: true,
		FamilyInterrogative:     true,
		FamilyReplyToQuestion:   true,
	}
	for _, c := range out {
		delete(missingFamilies, c.Family())
	}
	if len(missingFamilies) > 0 && len(out) < count {
		for i, c := range shuffled {
			if len(out) >= count || len(missingFamilies) == 0 {
				break
			}
			if used[i] {
				continue
			}
			if missingFamilies[c.Family()] {
				take(i)
				delete(missingFamilies, c.Family())
			}
		}
	}

	// 4) Add topic variety: round-robin across topic buckets, largest first.
	topicBuckets := make(map[string][]int)
	for i, c := range shuffled {
		if used[i] {
			continue
		}
		tk := c.Topic()
		topicBuckets[tk] = append(topicBuckets[tk], i)
	}
	topicOrder := make([]string, 0, len(topicBuckets))
	for t := range topicBuckets {
		topicOrder = append(topicOrder, t)
	}
	sort.Slice(topicOrder, func(i, j int) bool {
		a, b := topicOrder[i], topicOrder[j]
		if len(topicBuckets[a]) != len(topicBuckets[b]) {
			return len(topicBuckets[a]) > len(topicBuckets[b])
		}
		return a < b
	})
	topicTarget := count / 2
	if topicTarget < 4 {
		topicTarget = 4
	}
	if room := count - len(out); topicTarget > room {
		topicTarget = room
	}
	for len(out) < count && topicTarget > 0 {
		progressed := false
		for _, t := range topicOrder {
			if topicTarget <= 0 || len(out) >= count {
				break
			}
			bucket := topicBuckets[t]
			if len(bucket) == 0 {
				continue
			}
			idx := bucket[len(bucket)-1]
			topicBuckets[t] = bucket[:len(bucket)-1]
			if used[idx] {
				continue
			}
			take(idx)
			topicTarget--
			progressed = true
		}
		if !progressed {
			break
		}
	}

	// 5) Ensure both reply contexts appear when possible.
	neededContexts := map[string]bool{"social": true, "campus": true}
	for _, c := range out {
		delete(neededContexts, c.Context)
	}
	if len(neededContexts) > 0 && len(out) < count {
		for i, c := range shuffled {
			if len(out) >= count || len(neededContexts) == 0 {
				break
			}
			if used[i] {
				continue
			}
			if neededContexts[c.Context] {
				take(i)
				delete(neededContexts, c.Context)
			}
		}
	}

	// 6) Ensure core grammar focus areas are represented when possible.
	missingTags := make(map[string]bool, len(TargetGrammarTags))
	for _, t := range TargetGrammarTags {
		missingTags[t] = true
	}
	for _, c := range out {
		for tag := range c.GrammarTags {
			delete(missingTags, tag)
		}
	}
	if len(missingTags) > 0 && len(out) < count {
		for i, c := range shuffled {
			if len(out) >= count || len(missingTags) == 0 {
				break
			}
			if used[i] {
				continue
			}
			covers := false
			for tag := range c.GrammarTags {
				if missingTags[tag] {
					covers = true
				}
			}
			if covers {
				take(i)
				for tag := range c.GrammarTags {
					delete(missingTags, tag)
				}
			}
		}
	}

	// 7) Fill remaining slots from the rest.
	for i := range shuffled {
		if len(out) >= count {
			break
		}
		if used[i] {
			continue
		}
		take(i)
	}

	if len(out) > count {
		out = out[:count]
	}
	return out
}
