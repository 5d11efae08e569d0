package internal

// Version is reported in serverInfo and by --version.
const Version = "0.1.0"
