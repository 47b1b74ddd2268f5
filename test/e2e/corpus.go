// Package e2e provides end-to-end tests with a generated corpus and multiple queries.
package e2e

import (
	"fmt"
)

// E2EMemory is a memory entry in the E2E corpus.
type E2EMemory struct {
	ID      string
	Title   string
	Content string
	Tags    []string
	Type    string
	Date    string
}

// QueryTestCase defines a query and the memory ID(s) that must appear in
// search results. At least one of ExpectedIDs must be present.
type QueryTestCase struct {
	Query       string
	ExpectedIDs []string
	Description string
}

// Corpus holds memories and query test cases for E2E tests.
type Corpus struct {
	Memories  []E2EMemory
	TestCases []QueryTestCase
}

// BuildCorpus returns a corpus of memories with varied content. Each topic has
// a unique signature phrase so queries can assert the correct memory returns.
func BuildCorpus() *Corpus {
	memories := buildMemories(60)
	return &Corpus{
		Memories:  memories,
		TestCases: buildQueryTestCases(memories),
	}
}

var corpusTopics = []struct {
	title   string
	phrase  string
	content string
	tags    []string
	mtype   string
}{
	{"Lisbon Holiday", "pastel de nata tasting", "Walked the old town all morning. The pastel de nata tasting near the tram stop was the highlight.", []string{"travel", "food"}, "journal"},
	{"Garden Progress", "tomato seedlings sprouted", "Checked the greenhouse after the rain. The tomato seedlings sprouted faster than last spring.", []string{"garden"}, "journal"},
	{"Marathon Training", "long run along the river", "Sunday long run along the river felt easier this week. Knees held up fine.", []string{"running", "health"}, "journal"},
	{"Grandma's Recipe", "cinnamon apple pie recipe", "Finally wrote down the cinnamon apple pie recipe exactly the way she makes it.", []string{"family", "food"}, "note"},
	{"Beach Weekend", "bonfire on the beach", "We stayed until midnight for the bonfire on the beach. The kids collected shells all afternoon.", []string{"family", "beach"}, "photo"},
	{"Piano Recital", "first piano recital", "Her first piano recital went better than the rehearsals. She picked the Satie piece herself.", []string{"family", "music"}, "video"},
	{"Job Interview", "final round interview", "The final round interview ran long but the team seemed great. Heard back within a week.", []string{"work"}, "journal"},
	{"Camping Trip", "tent by the lake", "Pitched the tent by the lake just before the storm. Coffee at sunrise made up for the wet night.", []string{"travel", "outdoors"}, "photo"},
	{"Book Notes", "chapter on habit loops", "The chapter on habit loops explains cue, routine, reward with good examples.", []string{"reading"}, "note"},
	{"Moving Day", "keys to the new apartment", "Got the keys to the new apartment at noon. Pizza on moving boxes for dinner.", []string{"home"}, "journal"},
	{"Concert Night", "encore lasted three songs", "Best show in years. The encore lasted three songs and nobody wanted to leave.", []string{"music", "friends"}, "photo"},
	{"Cooking Class", "fresh pasta from scratch", "Learned to make fresh pasta from scratch. The trick is resting the dough twice.", []string{"food"}, "journal"},
}

func buildMemories(n int) []E2EMemory {
	memories := make([]E2EMemory, 0, n)
	for i := 0; i < n; i++ {
		topic := corpusTopics[i%len(corpusTopics)]
		id := fmt.Sprintf("mem-%03d", i)
		title := topic.title
		if i >= len(corpusTopics) {
			title = fmt.Sprintf("%s %d", topic.title, i/len(corpusTopics)+1)
		}
		memories = append(memories, E2EMemory{
			ID:      id,
			Title:   title,
			Content: topic.content,
			Tags:    topic.tags,
			Type:    topic.mtype,
			Date:    fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
		})
	}
	return memories
}

// idsForTopic returns every memory ID generated from the topic at index ti.
func idsForTopic(memories []E2EMemory, ti int) []string {
	ids := []string{}
	for i := range memories {
		if i%len(corpusTopics) == ti {
			ids = append(ids, memories[i].ID)
		}
	}
	return ids
}

func buildQueryTestCases(memories []E2EMemory) []QueryTestCase {
	return []QueryTestCase{
		{"pastel de nata", idsForTopic(memories, 0), "signature phrase match"},
		{"tomato seedlings", idsForTopic(memories, 1), "two-word phrase"},
		{"bonfire beach", idsForTopic(memories, 4), "words across title and content"},
		{"piano recital", idsForTopic(memories, 5), "title match"},
		{"habit loops", idsForTopic(memories, 8), "note content match"},
		{"fresh pasta", idsForTopic(memories, 11), "last topic match"},
		{"recitall", idsForTopic(memories, 5), "single-character typo"},
	}
}
