package card

import (
	"sort"
	"strings"
)

// Micro-lessons shown alongside verification results: short verification
// techniques a reader can apply themselves.
var lessons = map[string]string{
	"lateral_reading": `**Lateral Reading**

Instead of reading "down" a single article, read "laterally."

1. **Open multiple sources:** When you encounter a new claim, open several new tabs to see what other reputable sources say about it.
2. **Check the source:** Who is the author? What is the domain? Is it a well-known news organization, a blog, or a known misinformation site?
3. **Find the consensus:** Look for what the majority of reliable sources are saying. If a claim is only supported by a few unknown sites, it's likely unreliable.`,

	"sift": `**SIFT**

A four-move framework for quick fact-checking:

1. **Stop** before sharing or reacting.
2. **Investigate the source** — who is behind it, and what is their expertise or agenda?
3. **Find better coverage** — look for trusted reporting on the same claim.
4. **Trace** claims, quotes, and media back to their original context.`,
}

// Lesson returns the text for a micro-lesson topic, or an empty string when
// the topic is unknown.
func Lesson(topic string) string {
	return lessons[strings.ToLower(strings.TrimSpace(topic))]
}

// LessonTopics lists the available lesson topics in stable order.
func LessonTopics() []string {
	topics := make([]string, 0, len(lessons))
	for topic := range lessons {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}
