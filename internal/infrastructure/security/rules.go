package security

import "github.com/jswirl/ollash/internal/domain"

// defaultRules is the embedded, versioned risk table. Order matters: the
// reason list of a verdict follows table order. Each entry names the lowest
// safety level at which it applies, so the rule set active at a higher
// level is always a superset of the set active below it.
//
// This is an advisory pattern list, not a security boundary. Rules can
// false-positive on benign text and miss obfuscated equivalents.
func defaultRules() []domain.Rule {
	return []domain.Rule{
		// Active at every level.
		{Pattern: `rm\s+-[a-zA-Z]*[rR][a-zA-Z]*\s+/(\s|$)`, MinLevel: domain.SafetyLow, Reason: "recursive deletion of filesystem root"},
		{Pattern: `rm\s+-[a-zA-Z]*[rR][a-zA-Z]*\s+(~(/)?(\s|$)|\$HOME(/)?(\s|$))`, MinLevel: domain.SafetyLow, Reason: "recursive deletion of home directory"},
		{Pattern: `dd\s+[^|;]*of=/dev/(sd|hd|nvme|vd|xvd|mmcblk)`, MinLevel: domain.SafetyLow, Reason: "direct write to a raw block device"},
		{Pattern: `>\s*/dev/(sd|hd|nvme|vd|xvd|mmcblk)`, MinLevel: domain.SafetyLow, Reason: "redirect onto a raw block device"},
		{Pattern: `\bmkfs(\.[a-z0-9]+)?\b`, MinLevel: domain.SafetyLow, Reason: "filesystem format command"},
		{Pattern: `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`, MinLevel: domain.SafetyLow, Reason: "fork bomb construct"},
		{Pattern: `\b(shutdown|reboot|halt|poweroff)\b`, MinLevel: domain.SafetyLow, Reason: "system shutdown or reboot"},

		// Added at medium.
		{Pattern: `rm\s+-[a-zA-Z]*[rR]`, MinLevel: domain.SafetyMedium, Reason: "recursive deletion"},
		{Pattern: `\b(chmod|chown)\b[^|;]*\s/(etc|bin|sbin|usr|var|boot|lib)\b`, MinLevel: domain.SafetyMedium, Reason: "permission or ownership change on a system path"},
		{Pattern: `(>|>>)\s*/etc/`, MinLevel: domain.SafetyMedium, Reason: "write into /etc"},
		{Pattern: `\btee\b[^|;]*\s/etc/`, MinLevel: domain.SafetyMedium, Reason: "write into /etc"},
		{Pattern: `\b(curl|wget)\b[^|;]*\|\s*(sudo\s+)?(ba|z|fi)?sh\b`, MinLevel: domain.SafetyMedium, Reason: "downloads and executes a remote script"},
		{Pattern: `\$\(\s*(curl|wget)\b`, MinLevel: domain.SafetyMedium, Reason: "evaluates output fetched from the network"},
		{Pattern: "`\\s*(curl|wget)\\b", MinLevel: domain.SafetyMedium, Reason: "evaluates output fetched from the network"},

		// Added at high.
		{Pattern: `\b(sudo|doas)\b`, MinLevel: domain.SafetyHigh, Reason: "privilege escalation"},
		{Pattern: `(^|[\s;&|])su(\s|$)`, MinLevel: domain.SafetyHigh, Reason: "privilege escalation"},
		{Pattern: `\b(useradd|userdel|usermod|groupadd|groupdel|passwd|chpasswd)\b`, MinLevel: domain.SafetyHigh, Reason: "account or credential management"},
		{Pattern: `\b(systemctl|service)\s+(start|stop|restart|reload|enable|disable|mask)\b`, MinLevel: domain.SafetyHigh, Reason: "service or daemon control"},
		{Pattern: `\b(fdisk|parted|sfdisk|gdisk|cfdisk)\b`, MinLevel: domain.SafetyHigh, Reason: "disk partitioning"},
		{Pattern: `\b(iptables|ip6tables|nft|ufw|firewall-cmd)\b`, MinLevel: domain.SafetyHigh, Reason: "firewall configuration"},
		{Pattern: `\b(ssh-keygen|certbot)\b`, MinLevel: domain.SafetyHigh, Reason: "key or certificate generation"},
		{Pattern: `\bopenssl\s+(req|genrsa|genpkey|ecparam|x509)\b`, MinLevel: domain.SafetyHigh, Reason: "key or certificate generation"},
	}
}
