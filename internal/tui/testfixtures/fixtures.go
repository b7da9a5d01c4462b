package testfixtures

// DefinitionYAML is a small wizard definition exercising every step kind.
const DefinitionYAML = `name: Test agent
profile_key: profile
sections:
  - name: Basics
    steps:
      - name: welcome
        kind: info
        title: Welcome
        body: "# Hello"
      - name: profile
        kind: text
        key: profile
        label: Profile
        required: true
        pattern: "^[a-z0-9-]+$"
        error: "lowercase letters, digits and dashes only"
  - name: Reporting
    steps:
      - name: enable
        kind: toggle
        key: reporting.enabled
        label: Send reports
        enables: [url, token]
      - name: url
        kind: text
        key: reporting.url
        label: Collector URL
        required: true
      - name: token
        kind: text
        key: reporting.token
        label: Token
        secret: true
  - name: Output
    steps:
      - name: level
        kind: choice
        key: output.level
        label: Log level
        options: [info, debug, error]
        default: info
      - name: notes
        kind: editor
        key: output.notes
        label: Notes
  - name: Review
    steps:
      - name: review
        kind: review
        title: Review
`
