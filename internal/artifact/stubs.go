package artifact

// Static documents shipped with every plugin. They do not depend on the
// configuration content.

const uninstallSource = `<?php if (!defined('WP_UNINSTALL_PLUGIN')) exit; delete_option('sct_target_date'); delete_option('sct_target_time'); delete_option('sct_style'); ?>`

const adminSettingsSource = `<?php
// Settings are baked into the plugin at generation time.
if ( ! defined( 'ABSPATH' ) ) exit;
`

// UninstallStub returns the uninstall.php cleanup script.
func UninstallStub() Document {
	return Document{Name: "uninstall", Path: "uninstall.php", Content: uninstallSource}
}

// AdminSettingsStub returns includes/admin-settings.php.
func AdminSettingsStub() Document {
	return Document{Name: "admin-settings", Path: "includes/admin-settings.php", Content: adminSettingsSource}
}
