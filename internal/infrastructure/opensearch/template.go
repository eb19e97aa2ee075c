// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

const queryResourceSource = `{
  "from": {{ .From }},
  "size": {{ .Size }},
  "track_total_hits": true,
  "query": {
    "bool": {
      "filter": [
        {
          "term": {"resource_type": {{ .ResourceType | quote }}}
        }
        {{- if .HasSite }},
        {
          "term": {
            {{ if .AttachedOnly }}"attached_site_ids"{{ else }}"site_ids"{{ end }}: {{ .SiteID | quote }}
          }
        }
        {{- end }}
        {{- if .ResourceClassIDs }},
        {
          "terms": {"resource_class_id": [{{ range $i, $id := .ResourceClassIDs }}{{ if $i }}, {{ end }}{{ $id | quote }}{{ end }}]}
        }
        {{- end }}
        {{- if .ItemSetIDs }},
        {
          "terms": {"item_set_ids": [{{ range $i, $id := .ItemSetIDs }}{{ if $i }}, {{ end }}{{ $id | quote }}{{ end }}]}
        }
        {{- end }}
      ],
      "must": [
        {{- if .Search }}
        {
          "multi_match": {
            "query": {{ .Search | quote }},
            "fields": ["title^3", "fulltext"]
          }
        }
        {{- else }}
        {"match_all": {}}
        {{- end }}
        {{- range .Properties }}
        {{- if not .Negate }},
        {{ template "property" . }}
        {{- end }}
        {{- end }}
      ],
      "must_not": [
        {{- $first := true }}
        {{- range .Properties }}
        {{- if .Negate }}
        {{- if $first }}{{ $first = false }}{{ else }},{{ end }}
        {{ template "property" . }}
        {{- end }}
        {{- end }}
      ]
    }
  },
  "sort": [
    {
      {{ .SortField | quote }}: {
        "order": {{ .SortOrder | quote }},
        "unmapped_type": "keyword"
      }
    },
    {"id": "asc"}
  ]
}
{{- define "property" -}}
{{- if eq .Match "exists" -}}
{"exists": {"field": {{ .Field | quote }}}}
{{- else -}}
{ {{ .Match | quote }}: { {{ .Field | quote }}: {{ .Text | quote }} } }
{{- end -}}
{{- end -}}`
