package mcpserver

// PostFormatContract describes the canonical source file format so LLM
// consumers can read posts correctly.
const PostFormatContract = `# Ansuz Post Format Contract

Every markdown post served by Ansuz follows this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title         # default "Untitled" when absent
date: 2025-01-15                    # ISO date; defaults to the load date
summary: One-line description       # default ""
tags:                               # default []
  - tag-one
category: General                   # default "General"
draft: false                        # drafts are hidden from listings
hidden: false                       # hidden posts stay reachable by slug
---

Body text in standard Markdown.

Reference another post with {{Display Text}}. The link target is derived
from the display text: lowercase, spaces to hyphens, characters outside
[a-z0-9-] stripped, hyphen runs collapsed, edge hyphens trimmed.

Embed a video with {{youtube.<url>}}. Unresolvable URLs stay as literal
text.
` + "```" + `

## Rules

1. The slug is derived from the filename stem, never from content.
2. Markers inside fenced code blocks are never interpreted.
3. A reference may point at a post that does not exist; the link simply
   never resolves.
4. A malformed frontmatter block excludes the post from the collection; it
   does not abort loading.
`
