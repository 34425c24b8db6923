package readme

import (
	"fmt"
	"strings"
	"time"
)

// MITLicense returns MIT license text for the given copyright holder and
// the current year.
func MITLicense(holder string) string {
	return fmt.Sprintf(`MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`, time.Now().Year(), holder)
}

// gitignoreCommon is included in every generated .gitignore.
const gitignoreCommon = `# OS
.DS_Store
Thumbs.db

# Editors
.idea/
.vscode/
*.swp

# Environment
.env
.env.local
`

// gitignoreByLanguage maps a primary language to its ignore block.
var gitignoreByLanguage = map[string]string{
	"go": `# Go
/bin/
*.exe
*.test
*.out
vendor/
`,
	"python": `# Python
__pycache__/
*.py[cod]
*.egg-info/
.venv/
venv/
dist/
build/
`,
	"javascript": `# Node
node_modules/
dist/
build/
npm-debug.log*
yarn-error.log*
`,
	"typescript": `# Node
node_modules/
dist/
build/
*.tsbuildinfo
npm-debug.log*
`,
	"rust": `# Rust
/target/
Cargo.lock
`,
	"ruby": `# Ruby
*.gem
.bundle/
vendor/bundle/
log/
tmp/
`,
	"java": `# Java
*.class
target/
build/
.gradle/
`,
	"php": `# PHP
/vendor/
composer.phar
`,
}

// Gitignore returns a .gitignore tailored to the repository's primary
// language, falling back to the common block for unknown languages.
func Gitignore(language string) string {
	block, ok := gitignoreByLanguage[strings.ToLower(language)]
	if !ok {
		return gitignoreCommon
	}
	return gitignoreCommon + "\n" + block
}
