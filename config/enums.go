package config

// How dark variant is triggered: by user preference media query or by
// "dark" class on an ancestor element.
// ENUM(media, class)
type DarkMode int
