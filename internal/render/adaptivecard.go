package render

const (
	cardSchema       = "http://adaptivecards.io/schemas/adaptive-card.json"
	cardFallbackText = "This card requires Adaptive Cards v1.2 support to be rendered properly."

	chevronDownURL = "https://adaptivecards.io/content/down.png"
	chevronUpURL   = "https://adaptivecards.io/content/up.png"
)

// AdaptiveCard serializes a document's sections into an Adaptive Card,
// one collapsible block per section. A document with no sections yields nil;
// the caller sends plain text in that case. The reply text itself travels
// outside the card, in the message body.
func AdaptiveCard(doc Document) map[string]any {
	if len(doc.Sections) == 0 {
		return nil
	}

	body := make([]any, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		elements := make([]any, 0, len(s.Elements))
		for _, e := range s.Elements {
			elements = append(elements, elementJSON(e))
		}
		body = append(body, expandableBlock(s.ID, s.Title, elements))
	}

	return map[string]any{
		"type":         "AdaptiveCard",
		"body":         body,
		"$schema":      cardSchema,
		"fallbackText": cardFallbackText,
	}
}

func elementJSON(e Element) map[string]any {
	switch el := e.(type) {
	case TextBlock:
		return map[string]any{
			"type": "TextBlock",
			"text": el.Text,
			"wrap": el.Wrap,
			"size": el.Size,
		}
	case CodeBlock:
		return map[string]any{
			"type":        "CodeBlock",
			"codeSnippet": el.Code,
			"language":    el.Language,
		}
	case MediaBlock:
		return map[string]any{
			"type": "Media",
			"sources": []any{
				map[string]any{
					"mimeType": el.MIMEType,
					"url":      el.URL,
					"label":    el.Label,
				},
			},
		}
	case ChartBlock:
		return map[string]any{
			"id":    el.ID,
			"type":  el.ChartType,
			"title": el.Title,
			"data":  el.Data,
		}
	case Container:
		items := make([]any, 0, len(el.Items))
		for _, item := range el.Items {
			items = append(items, elementJSON(item))
		}
		return map[string]any{
			"type":  "Container",
			"items": items,
		}
	default:
		return map[string]any{"type": "TextBlock", "text": "", "wrap": true}
	}
}

// expandableBlock wraps elements in a collapsed container with a tap-to-
// toggle header. The chevron images swap visibility together with the
// content, so the header always shows the current state.
func expandableBlock(id, title string, elements []any) map[string]any {
	return map[string]any{
		"type": "Container",
		"items": []any{
			map[string]any{
				"type": "ColumnSet",
				"columns": []any{
					map[string]any{
						"type": "Column",
						"items": []any{
							map[string]any{
								"type": "TextBlock",
								"text": title,
								"wrap": true,
								"size": "Medium",
							},
						},
						"width": "stretch",
					},
					chevronColumn("chevronDown"+id, chevronDownURL, "collapsed", false),
					chevronColumn("chevronUp"+id, chevronUpURL, "expanded", true),
				},
				"selectAction": map[string]any{
					"type": "Action.ToggleVisibility",
					"targetElements": []any{
						"cardContent" + id,
						"chevronUp" + id,
						"chevronDown" + id,
					},
				},
			},
			map[string]any{
				"type": "Container",
				"id":   "cardContent" + id,
				"items": []any{
					map[string]any{
						"type": "Container",
						"fallback": map[string]any{
							"type": "TextBlock",
							"text": "The elements for this block aren't supported.",
							"wrap": true,
						},
						"items": elements,
					},
				},
				"isVisible": false,
			},
		},
		"separator": true,
		"spacing":   "Small",
	}
}

func chevronColumn(id, url, altText string, visible bool) map[string]any {
	col := map[string]any{
		"type":                     "Column",
		"id":                       id,
		"spacing":                  "Small",
		"verticalContentAlignment": "Center",
		"items": []any{
			map[string]any{
				"type":    "Image",
				"url":     url,
				"width":   "20px",
				"altText": altText,
			},
		},
		"width": "auto",
	}
	if !visible {
		col["isVisible"] = false
	}
	return col
}
