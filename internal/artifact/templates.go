package artifact

const manifestSource = `<?php
/**
 * Plugin Name: {{header .Config.Identity.Name}}
 * Description: A professional countdown timer featuring Bar, Banner, and Box layouts.
 * Version: 1.0.0
 * Author: Smart Countdown Generator
 * Text Domain: {{header .Config.Identity.Slug}}
 */

if ( ! defined( 'ABSPATH' ) ) {
    exit; // Exit if accessed directly.
}

define( 'SCT_PATH', plugin_dir_path( __FILE__ ) );
define( 'SCT_URL', plugin_dir_url( __FILE__ ) );

require_once SCT_PATH . 'includes/shortcode.php';

function sct_enqueue_assets() {
    wp_register_style( 'sct-style', SCT_URL . 'assets/css/style.css', array(), '1.0.0' );
    wp_register_script( 'sct-script', SCT_URL . 'assets/js/script.js', array(), '1.0.0', true );
}
add_action( 'wp_enqueue_scripts', 'sct_enqueue_assets' );
{{- if .Style.Fixed}}

// The timer was designed as a fixed {{.Style.Position}} {{.Style.Layout}}: inject it on every front-end page.
function sct_inject_timer() {
    if ( is_admin() ) {
        return;
    }
    echo do_shortcode( '[{{.Tag}}]' );
}
add_action( '{{if eq .Style.Position "top"}}wp_body_open{{else}}wp_footer{{end}}', 'sct_inject_timer' );
{{- end}}
`

const shortcodeSource = `<?php
if ( ! defined( 'ABSPATH' ) ) {
    exit;
}

function sct_shortcode_handler( $atts ) {
    wp_enqueue_style( 'sct-style' );
    wp_enqueue_script( 'sct-script' );

    $a = shortcode_atts( array(
        'date'    => '{{php .Config.TargetDate}}',
        'time'    => '{{php .Config.TargetTime}}',
        'action'  => '{{php (printf "%s" .Config.Expiry.Action)}}',
        'message' => '{{php .Config.Expiry.Message}}',
        'url'     => '{{php .Config.Expiry.RedirectURL}}',
        'title'   => '{{php .Config.TitleText}}',
        'predate' => '{{php .Config.PreDateText}}',
    ), $atts, '{{.Tag}}' );

    $datetime = $a['date'] . ' ' . $a['time'];
    $id = 'sct-' . uniqid();

    $layout_class = 'sct-layout-{{.Style.Layout}}';
    $position_class = 'sct-pos-{{.Style.Position}}';

    ob_start();
    ?>
    <div id="<?php echo esc_attr( $id ); ?>"
         class="sct-container <?php echo esc_attr( $layout_class . ' ' . $position_class ); ?>"
         data-date="<?php echo esc_attr( $datetime ); ?>"
         data-action="<?php echo esc_attr( $a['action'] ); ?>"
         data-url="<?php echo esc_url( $a['url'] ); ?>">

        <div class="sct-text-content">
{{- if .IsBanner}}
            <?php if ( ! empty( $a['title'] ) ) : ?>
                <div class="sct-title"><?php echo esc_html( $a['title'] ); ?></div>
            <?php endif; ?>
{{- end}}
            <?php if ( ! empty( $a['predate'] ) ) : ?>
                <div class="sct-pre-date"><?php echo esc_html( $a['predate'] ); ?></div>
            <?php endif; ?>
        </div>

        <div class="sct-timer">
{{- range .Units}}
            <div class="sct-box">
                <span class="sct-number sct-{{.Key}}">00</span>
                <span class="sct-label">{{.Label}}</span>
            </div>
{{- end}}
        </div>

        <div class="sct-expiry-message" style="display: none;">
            <?php echo esc_html( $a['message'] ); ?>
        </div>
    </div>
    <?php
    return ob_get_clean();
}
add_shortcode( '{{.Tag}}', 'sct_shortcode_handler' );
`

const stylesheetSource = `/* Base Container */
.sct-container {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    width: 100%;
    max-width: {{.Style.MaxWidth}};
    background-color: {{.Style.Colors.Background}};
    color: {{.Style.Colors.Text}};
    display: flex;
    align-items: center;
    justify-content: {{.Style.Justify}};
    padding: {{.Style.Padding}};
    border-radius: {{.Style.Radius}};
    box-shadow: 0 4px 20px rgba(0,0,0,0.1);
    position: relative;
    flex-wrap: wrap;
    gap: 20px;
    box-sizing: border-box;
    margin: 0 auto;
}
{{- if .Style.Fixed}}

/* Positioning */
.sct-pos-{{.Style.Position}} {
    position: fixed;
    {{.Style.Position}}: 0;
    left: 0;
    right: 0;
    z-index: 9999;
    border-radius: 0;
    max-width: 100% !important;
}
{{- end}}

/* Layout Specifics */
.sct-layout-{{.Style.Layout}} {
    flex-direction: {{.Style.Direction}};
{{- if .Style.TextAlign}}
    text-align: {{.Style.TextAlign}};
{{- end}}
}

/* Text Content */
.sct-text-content {
    display: flex;
    flex-direction: {{.Style.TextDirection}};
    align-items: center;
    gap: 12px;
    font-weight: 600;
}
.sct-title {
    font-size: {{.Style.TitleSize}};
    line-height: 1.2;
    font-weight: 700;
}
.sct-pre-date {
    font-size: 1rem;
    opacity: 0.9;
}

/* Timer Flex */
.sct-timer {
    display: flex;
    align-items: center;
    gap: {{.Style.TimerGap}};
}

/* Digit Box */
.sct-box {
    display: flex;
    flex-direction: {{.Style.BoxDirection}};
    align-items: center;
    justify-content: center;
    background-color: {{.Style.Colors.DigitBackground}};
    color: {{.Style.Colors.DigitText}};
    padding: {{.Style.BoxPadding}};
    border-radius: {{.Style.BoxRadius}};
    min-width: {{.Style.BoxMinWidth}};
    box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}

.sct-number {
    font-size: {{.Style.NumberSize}};
    font-weight: 700;
    line-height: 1;
    font-variant-numeric: tabular-nums;
}

.sct-label {
    font-size: {{.Style.LabelSize}};
    text-transform: uppercase;
    margin-left: {{.Style.LabelMarginLeft}};
    margin-top: {{.Style.LabelMarginTop}};
    opacity: 0.8;
    font-weight: 500;
}

/* Expiry Message */
.sct-expiry-message {
    text-align: center;
    font-size: 1.2rem;
    font-weight: bold;
    padding: 10px;
}

/* Mobile Responsive */
@media (max-width: {{.Style.Mobile.Breakpoint}}) {
    .sct-container {
        flex-direction: column;
        text-align: center;
        gap: 16px;
        padding: 16px;
        position: relative;
        justify-content: center;
    }

    .sct-text-content {
        flex-direction: column;
        gap: 4px;
        text-align: center;
    }

    .sct-box {
        min-width: {{.Style.Mobile.BoxMinWidth}};
        padding: {{.Style.Mobile.BoxPadding}};
    }
    .sct-number {
        font-size: {{.Style.Mobile.NumberSize}};
    }
    .sct-label {
        font-size: 0.65rem;
    }
}
`

// scriptSource is the standalone client runtime. It does not depend on the
// configuration: every value it needs is read from the container's data
// attributes.
const scriptSource = `(function () {
    'use strict';

    var MS_SECOND = 1000;
    var MS_MINUTE = 60 * MS_SECOND;
    var MS_HOUR = 60 * MS_MINUTE;
    var MS_DAY = 24 * MS_HOUR;

    // "YYYY-MM-DD HH:MM" in the viewer's local clock; NaN when unparseable.
    function parseTarget(value) {
        var m = /^(\d{4})-(\d{2})-(\d{2})[ T](\d{2}):(\d{2})/.exec(value || '');
        if (!m) {
            return NaN;
        }
        var d = new Date(+m[1], +m[2] - 1, +m[3], +m[4], +m[5], 0, 0);
        return d.getTime();
    }

    function derive(target, now) {
        if (isNaN(target) || now >= target) {
            return null;
        }
        var delta = Math.floor(target - now);
        return {
            days: Math.floor(delta / MS_DAY),
            hours: Math.floor((delta % MS_DAY) / MS_HOUR),
            minutes: Math.floor((delta % MS_HOUR) / MS_MINUTE),
            seconds: Math.floor((delta % MS_MINUTE) / MS_SECOND)
        };
    }

    function pad(value) {
        return value < 10 ? '0' + value : String(value);
    }

    function navigable(url) {
        return /^https?:\/\/[^\/\s]+/i.test(url) || /^\/(?!\/)/.test(url);
    }

    function setNumber(el, value) {
        if (!el) {
            return;
        }
        var text = pad(value);
        if (el.textContent !== text) {
            el.textContent = text;
        }
    }

    function show(el, visible) {
        if (el) {
            el.style.display = visible ? '' : 'none';
        }
    }

    function start(wrapper) {
        var target = parseTarget(wrapper.getAttribute('data-date'));
        var action = wrapper.getAttribute('data-action');
        var redirectUrl = (wrapper.getAttribute('data-url') || '').trim();

        var timerEl = wrapper.querySelector('.sct-timer');
        var contentEl = wrapper.querySelector('.sct-text-content');
        var msgEl = wrapper.querySelector('.sct-expiry-message');
        var units = {
            days: wrapper.querySelector('.sct-days'),
            hours: wrapper.querySelector('.sct-hours'),
            minutes: wrapper.querySelector('.sct-minutes'),
            seconds: wrapper.querySelector('.sct-seconds')
        };
        var interval = null;
        var expired = false;

        function expire() {
            if (expired) {
                return;
            }
            expired = true;
            if (interval !== null) {
                clearInterval(interval);
                interval = null;
            }

            if (action === 'hide') {
                wrapper.style.display = 'none';
                return;
            }
            if (action === 'redirect') {
                if (navigable(redirectUrl)) {
                    window.location.href = redirectUrl;
                }
                return;
            }

            show(timerEl, false);
            show(contentEl, false);
            if (msgEl) {
                if (action !== 'message') {
                    msgEl.textContent = '';
                }
                msgEl.style.display = 'block';
            }
        }

        function tick() {
            var remaining = derive(target, Date.now());
            if (remaining === null) {
                expire();
                return;
            }
            setNumber(units.days, remaining.days);
            setNumber(units.hours, remaining.hours);
            setNumber(units.minutes, remaining.minutes);
            setNumber(units.seconds, remaining.seconds);
        }

        tick();
        if (!expired) {
            interval = setInterval(tick, MS_SECOND);
        }

        window.addEventListener('pagehide', function () {
            if (interval !== null) {
                clearInterval(interval);
                interval = null;
            }
        });
    }

    function init() {
        var timers = document.querySelectorAll('.sct-container');
        for (var i = 0; i < timers.length; i++) {
            start(timers[i]);
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', init);
    } else {
        init();
    }
})();
`

const readmeSource = `=== {{.Config.Identity.Name}} ===
Contributors: WP Smart Plugins
Tags: countdown, timer, bar, banner
Requires at least: 5.0
Tested up to: 6.4
Stable tag: 1.0.0
License: GPLv2 or later

A smart, responsive countdown timer with Bar, Banner, and Box layouts.

== Description ==

{{.Config.Identity.Name}} allows you to add professional countdown timers.

**Configuration Used:**
* Layout: {{.Config.Layout}}
* Position: {{.Config.Position}}
* Target: {{.Config.TargetDate}} {{.Config.TargetTime}}

== Usage ==

Use the shortcode:
` + "`[{{.Tag}}]`" + `

Every attribute is optional and defaults to the value chosen in the generator:
` + "`[{{.Tag}} date=\"{{.Config.TargetDate}}\" time=\"{{.Config.TargetTime}}\" action=\"message\" message=\"...\" url=\"...\" title=\"...\" predate=\"...\"]`" + `

The plugin is pre-configured with the styles you selected in the generator.
`
