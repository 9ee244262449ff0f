package usecase

import "fmt"

// NoSummaryPlaceholder replaces a missing summary in every prompt.
const NoSummaryPlaceholder = "No summary available."

func summaryOrPlaceholder(summary string) string {
	if summary == "" {
		return NoSummaryPlaceholder
	}
	return summary
}

func relevancePrompt(title, summary string) string {
	return fmt.Sprintf(`You are a news editor's assistant. Your job is to decide if an article is important enough to be featured on social media.
Consider if the topic is a major product launch, a significant industry event, a major breakthrough, or a widely impactful story.
Ignore minor updates, opinion pieces, or niche stories.

Analyze the following article details:
Title: "%s"
Summary: "%s"

Based on these details, is this article significant enough to create a social media post about?
Respond with only the word "Yes" or "No".`, title, summaryOrPlaceholder(summary))
}

func draftPrompt(title, summary, brandVoice string) string {
	return fmt.Sprintf(`You are an expert social media manager. Your goal is to draft a complete, ready-to-publish Twitter/X thread based on the article title and summary.

Article Title: "%s"
Article Summary: "%s"

Brand Voice & Formatting Guidelines:
---
%s
---

Please generate the thread now.`, title, summaryOrPlaceholder(summary), brandVoice)
}
