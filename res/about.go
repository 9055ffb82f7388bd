package res

// AboutContent contains the Markdown content for the About dialog.
// This is maintained separately for easy updates.
const AboutContent = `A themeable music player built with Go and Fyne.

**Features:**
- Plays MP3, WAV, OGG and FLAC files from a folder
- Shows embedded album art and elapsed time
- Themes are JSON files: colours, background images and button skins
- Right-click the album art to pick a theme
`
